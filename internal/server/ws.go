package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Hitargot/Qooa-Frontend/internal/provider"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// telemetryRequest is the incoming WebSocket message format.
type telemetryRequest struct {
	Type       string `json:"type"` // "latest" or "history"
	ShipmentID string `json:"shipmentId"`
}

// telemetryResponse is the outgoing WebSocket message format.
type telemetryResponse struct {
	Type       string               `json:"type"` // "telemetry", "history" or "error"
	ShipmentID string               `json:"shipmentId,omitempty"`
	Reading    *provider.Telemetry  `json:"reading,omitempty"`
	Readings   []provider.Telemetry `json:"readings,omitempty"`
	Error      string               `json:"error,omitempty"`
}

func (s *Server) handleTelemetrySocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req telemetryRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		if req.ShipmentID == "" {
			s.sendSocketError(conn, "", "shipmentId is required")
			continue
		}

		switch req.Type {
		case "latest":
			s.sendLatest(conn, r, req.ShipmentID)
		case "history":
			s.sendHistory(conn, r, req.ShipmentID)
		default:
			s.sendSocketError(conn, req.ShipmentID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) sendLatest(conn *websocket.Conn, r *http.Request, shipmentID string) {
	reading, err := s.deps.Provider.LatestTelemetry(r.Context(), shipmentID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			s.sendSocketError(conn, shipmentID, "shipment not found")
			return
		}
		s.sendSocketError(conn, shipmentID, err.Error())
		return
	}
	s.sendSocketResponse(conn, telemetryResponse{
		Type:       "telemetry",
		ShipmentID: shipmentID,
		Reading:    reading,
	})
}

func (s *Server) sendHistory(conn *websocket.Conn, r *http.Request, shipmentID string) {
	history, err := s.deps.Provider.TelemetryHistory(r.Context(), shipmentID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			s.sendSocketError(conn, shipmentID, "shipment not found")
			return
		}
		s.sendSocketError(conn, shipmentID, err.Error())
		return
	}
	s.sendSocketResponse(conn, telemetryResponse{
		Type:       "history",
		ShipmentID: shipmentID,
		Readings:   history,
	})
}

func (s *Server) sendSocketError(conn *websocket.Conn, shipmentID, message string) {
	s.sendSocketResponse(conn, telemetryResponse{
		Type:       "error",
		ShipmentID: shipmentID,
		Error:      message,
	})
}

func (s *Server) sendSocketResponse(conn *websocket.Conn, resp telemetryResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}
