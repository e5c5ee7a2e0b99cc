package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Hitargot/Qooa-Frontend/internal/alerts"
	"github.com/Hitargot/Qooa-Frontend/internal/credentials"
	"github.com/Hitargot/Qooa-Frontend/internal/provider"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Provider.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleShipments(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.Provider.Shipments(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleShipment(w http.ResponseWriter, r *http.Request) {
	shipment, err := s.deps.Provider.ShipmentByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shipment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleTelemetry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	history, err := s.deps.Provider.TelemetryHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shipment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// telemetryRecorder is implemented by providers that accept readings
// pushed from the trucks' field devices.
type telemetryRecorder interface {
	Record(shipmentID string, t provider.Telemetry)
}

func (s *Server) handleIngestTelemetry(w http.ResponseWriter, r *http.Request) {
	recorder, ok := s.deps.Provider.(telemetryRecorder)
	if !ok {
		writeError(w, http.StatusNotImplemented, "provider does not accept pushed readings")
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.deps.Provider.ShipmentByID(r.Context(), id); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shipment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var reading provider.Telemetry
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now()
	}
	recorder.Record(id, reading)

	// Readings past the configured critical thresholds raise red
	// alerts on the shipment.
	prefs := s.deps.Settings.Load(r.Context())
	if reading.Temperature >= prefs.CriticalTemperature {
		s.dispatchAlert(r.Context(), id, fmt.Sprintf("Temperature %.1f°C at or above critical threshold", reading.Temperature))
	}
	if reading.GasLevel >= prefs.CriticalGas {
		s.dispatchAlert(r.Context(), id, fmt.Sprintf("Ethylene gas %.0f ppm at or above critical threshold", reading.GasLevel))
	}

	writeJSON(w, http.StatusAccepted, reading)
}

func (s *Server) dispatchAlert(ctx context.Context, shipmentID, message string) {
	_, err := s.deps.Dispatcher.Dispatch(ctx, alerts.Alert{
		ShipmentID: shipmentID,
		Severity:   alerts.SeverityRed,
		Message:    message,
	})
	if err != nil {
		log.Printf("server: raising alert for %s: %v", shipmentID, err)
	}
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	s.deps.Share.ShareSnapshot(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"toasts": s.deps.Toasts.Drain(),
	})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req provider.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Origin = strings.TrimSpace(req.Origin)
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Origin == "" || req.Destination == "" {
		writeError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}
	if req.Crates <= 0 {
		writeError(w, http.StatusBadRequest, "crates must be positive")
		return
	}

	shipment, err := s.deps.Provider.CreateOrder(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.deps.Toasts.Toast("Order placed: " + shipment.ID)
	writeJSON(w, http.StatusCreated, shipment)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Settings.Load(r.Context()))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.OverlayStyle != settings.StyleCentered && in.OverlayStyle != settings.StyleSide {
		writeError(w, http.StatusBadRequest, "overlayStyle must be centered or side")
		return
	}
	if in.DefaultOverlaySize != settings.SizeRegular && in.DefaultOverlaySize != settings.SizeSmall {
		writeError(w, http.StatusBadRequest, "defaultOverlaySize must be regular or small")
		return
	}
	if err := s.deps.Settings.Save(r.Context(), in); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.deps.Toasts.Toast("Settings saved")
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleResetSettings(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Settings.Reset(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.deps.Toasts.Toast("Settings reset to defaults")
	writeJSON(w, http.StatusOK, out)
}

// handlePasswordForm opens the credential overlay. The body carries an
// optional token; absent means "derive the protocol from the request
// URL", present-but-empty selects the authenticated protocol.
func (s *Server) handlePasswordForm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token *string `json:"token"`
	}
	if r.Body != nil {
		// An empty body is fine; protocol comes from the URL then.
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	s.deps.Credentials.PresentChangeForm(r.Context(), body.Token, r.URL)

	form := s.deps.Credentials.Form()
	resp := map[string]any{
		"overlay": s.deps.Overlay.Snapshot(),
	}
	if form != nil {
		resp["protocol"] = form.Protocol.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePasswordSubmit(w http.ResponseWriter, r *http.Request) {
	var sub credentials.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.deps.Credentials.Submit(r.Context(), sub); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   s.deps.Credentials.InlineError(),
			"overlay": s.deps.Overlay.Snapshot(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"toasts":  s.deps.Toasts.Drain(),
		"overlay": s.deps.Overlay.Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
