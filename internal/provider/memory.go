package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Hitargot/Qooa-Frontend/internal/db"
)

// Memory is the seeded in-memory Provider. When a database is
// supplied, created orders are also recorded in the orders table so
// they survive restarts of the demo server.
type Memory struct {
	mu        sync.RWMutex
	shipments []Shipment
	telemetry map[string][]Telemetry
	db        *db.DB
}

// NewMemory creates a Memory provider seeded with demo shipments.
// database may be nil.
func NewMemory(database *db.DB) *Memory {
	m := &Memory{
		telemetry: make(map[string][]Telemetry),
		db:        database,
	}
	m.seed()
	return m
}

// Shipments lists all shipments.
func (m *Memory) Shipments(ctx context.Context) ([]Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Shipment, len(m.shipments))
	copy(out, m.shipments)
	return out, nil
}

// ShipmentByID looks up one shipment.
func (m *Memory) ShipmentByID(ctx context.Context, id string) (*Shipment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.shipments {
		if m.shipments[i].ID == id {
			s := m.shipments[i]
			return &s, nil
		}
	}
	return nil, ErrNotFound
}

// LatestTelemetry returns the most recent reading for a shipment, or
// nil when it has none.
func (m *Memory) LatestTelemetry(ctx context.Context, shipmentID string) (*Telemetry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := m.telemetry[shipmentID]
	if len(history) == 0 {
		return nil, nil
	}
	t := history[len(history)-1]
	return &t, nil
}

// TelemetryHistory returns all readings for a shipment, oldest first.
func (m *Memory) TelemetryHistory(ctx context.Context, shipmentID string) ([]Telemetry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	history := m.telemetry[shipmentID]
	out := make([]Telemetry, len(history))
	copy(out, history)
	return out, nil
}

// Stats computes the dashboard headline numbers.
func (m *Memory) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := Stats{TotalShipments: len(m.shipments)}
	for _, sh := range m.shipments {
		switch sh.Status {
		case "In Transit":
			s.InTransit++
		case "Completed":
			s.Completed++
		}
		if sh.BioShieldApplied {
			s.BioShieldActive++
		}
	}
	return s, nil
}

// CreateOrder registers a new shipment from the order form.
func (m *Memory) CreateOrder(ctx context.Context, req OrderRequest) (*Shipment, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, fmt.Errorf("provider: order needs origin and destination")
	}

	id := "SHP-" + strings.ToUpper(uuid.New().String()[:8])
	now := time.Now()
	sh := Shipment{
		ID:                 id,
		Origin:             req.Origin,
		Destination:        req.Destination,
		TruckID:            "TRK-PENDING",
		DriverName:         "Unassigned",
		CrateCount:         req.Crates,
		CurrentLocation:    req.Origin,
		Status:             "Scheduled",
		QualityStatus:      QualityGreen,
		HubTriageDecision:  TriageAccepted,
		HubTriageTimestamp: now,
		BioShieldApplied:   req.BioShield,
		NetworkStatus:      "online",
	}

	if m.db != nil {
		bioShield := 0
		if req.BioShield {
			bioShield = 1
		}
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO orders (id, origin, destination, crate_count, bio_shield)
			VALUES (?, ?, ?, ?, ?)`,
			sh.ID, req.Origin, req.Destination, req.Crates, bioShield,
		)
		if err != nil {
			return nil, fmt.Errorf("recording order: %w", err)
		}
	}

	m.mu.Lock()
	m.shipments = append(m.shipments, sh)
	m.mu.Unlock()
	return &sh, nil
}

// Record appends a telemetry reading (used by the live feed).
func (m *Memory) Record(shipmentID string, t Telemetry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ShipmentID = shipmentID
	m.telemetry[shipmentID] = append(m.telemetry[shipmentID], t)
}

func (m *Memory) seed() {
	now := time.Now()
	m.shipments = []Shipment{
		{
			ID: "SHP-001", Origin: "Kano Hub", Destination: "Mile 12 Market, Lagos",
			TruckID: "TRK-114", DriverName: "Ibrahim Musa", CrateCount: 48,
			CurrentLocation: "Lokoja", Status: "In Transit",
			QualityStatus: QualityGreen, HubTriageDecision: TriageAccepted,
			HubTemperature: 22.5, HubGasReading: 95, HubHumidity: 62,
			HubTriageTimestamp: now.Add(-30 * time.Hour),
			BioShieldApplied:   true, NetworkStatus: "online",
			SDSyncStatus: &SDSync{LastSyncTime: now.Add(-10 * time.Minute)},
		},
		{
			ID: "SHP-002", Origin: "Jos Hub", Destination: "Mile 12 Market, Lagos",
			TruckID: "TRK-087", DriverName: "Samuel Dung", CrateCount: 36,
			CurrentLocation: "Lokoja Gap", Status: "In Transit",
			QualityStatus: QualityOrange, HubTriageDecision: TriageCooled,
			HubTemperature: 27.1, HubGasReading: 180, HubHumidity: 71,
			HubTriageTimestamp: now.Add(-20 * time.Hour),
			FieldHeatDetected:  true, NetworkStatus: "offline",
			SDSyncStatus: &SDSync{PendingRecords: 14},
			Alerts: []Alert{
				{Severity: "orange", Message: "Gas level trending above 150 ppm"},
			},
		},
		{
			ID: "SHP-003", Origin: "Kano Hub", Destination: "Mushin Market, Lagos",
			TruckID: "TRK-042", DriverName: "Chidi Okafor", CrateCount: 52,
			CurrentLocation: "Mushin Market", Status: "Completed",
			QualityStatus: QualityRed, HubTriageDecision: TriageRejected,
			HubTemperature: 31.4, HubGasReading: 340, HubHumidity: 88,
			HubTriageTimestamp: now.Add(-50 * time.Hour),
			NetworkStatus:      "online",
			SDSyncStatus:       &SDSync{LastSyncTime: now.Add(-2 * time.Hour)},
			Alerts: []Alert{
				{Severity: "red", Message: "Temperature exceeded 28°C for 3 hours"},
				{Severity: "red", Message: "Ethylene gas above 300 ppm at hub entry"},
			},
		},
	}

	m.telemetry["SHP-001"] = []Telemetry{
		{ShipmentID: "SHP-001", Temperature: 21.8, GasLevel: 92, Humidity: 60,
			Location: Location{Name: "Kano Hub"}, NetworkStatus: "online", Timestamp: now.Add(-28 * time.Hour)},
		{ShipmentID: "SHP-001", Temperature: 23.2, GasLevel: 110, Humidity: 63,
			Location: Location{Name: "Abuja Bypass"}, NetworkStatus: "online", Timestamp: now.Add(-14 * time.Hour)},
		{ShipmentID: "SHP-001", Temperature: 24.1, GasLevel: 120, Humidity: 65,
			Location: Location{Name: "Lokoja"}, NetworkStatus: "online", Timestamp: now.Add(-1 * time.Hour)},
	}
	m.telemetry["SHP-002"] = []Telemetry{
		{ShipmentID: "SHP-002", Temperature: 25.6, GasLevel: 160, Humidity: 72,
			Location: Location{Name: "Jos Hub"}, NetworkStatus: "online", Timestamp: now.Add(-18 * time.Hour)},
		{ShipmentID: "SHP-002", Temperature: 26.8, GasLevel: 205, Humidity: 74,
			Location: Location{Name: "Lokoja Gap"}, NetworkStatus: "offline", Timestamp: now.Add(-3 * time.Hour)},
	}
	m.telemetry["SHP-003"] = []Telemetry{
		{ShipmentID: "SHP-003", Temperature: 29.5, GasLevel: 280, Humidity: 86,
			Location: Location{Name: "Kano Hub"}, NetworkStatus: "online", Timestamp: now.Add(-48 * time.Hour)},
		{ShipmentID: "SHP-003", Temperature: 31.2, GasLevel: 355, Humidity: 90,
			Location: Location{Name: "Mushin Market"}, NetworkStatus: "online", Timestamp: now.Add(-4 * time.Hour)},
	}
}
