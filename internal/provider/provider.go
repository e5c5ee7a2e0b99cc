// Package provider is the shipment/telemetry data boundary. The
// dashboard core consumes it through the Provider interface; Memory is
// the seeded demo implementation.
package provider

import (
	"context"
	"fmt"
	"time"
)

// QualityStatus is the shipment-level quality classification.
type QualityStatus string

const (
	QualityGreen  QualityStatus = "Green"
	QualityOrange QualityStatus = "Orange"
	QualityRed    QualityStatus = "Red"
)

// TriageDecision records the hub triage outcome for a shipment.
type TriageDecision string

const (
	TriageAccepted TriageDecision = "accepted"
	TriageCooled   TriageDecision = "cooled"
	TriageRejected TriageDecision = "rejected"
)

// Alert is a shipment-scoped alert raised by threshold monitoring.
type Alert struct {
	Severity string `json:"severity"` // "orange" or "red"
	Message  string `json:"message"`
}

// SDSync describes the offline cache state of a shipment's logger.
type SDSync struct {
	PendingRecords int       `json:"pendingRecords"`
	LastSyncTime   time.Time `json:"lastSyncTime"`
}

// Shipment is a tracked consignment.
type Shipment struct {
	ID                 string         `json:"id"`
	Origin             string         `json:"origin"`
	Destination        string         `json:"destination"`
	TruckID            string         `json:"truckId"`
	DriverName         string         `json:"driverName"`
	CrateCount         int            `json:"crateCount"`
	CurrentLocation    string         `json:"currentLocation"`
	Status             string         `json:"status"`
	QualityStatus      QualityStatus  `json:"qualityStatus"`
	HubTriageDecision  TriageDecision `json:"hubTriageDecision"`
	HubTemperature     float64        `json:"hubTemperature"`
	HubGasReading      float64        `json:"hubGasReading"`
	HubHumidity        float64        `json:"hubHumidity"`
	HubTriageTimestamp time.Time      `json:"hubTriageTimestamp"`
	FieldHeatDetected  bool           `json:"fieldHeatDetected"`
	BioShieldApplied   bool           `json:"bioShieldApplied"`
	NetworkStatus      string         `json:"networkStatus"` // "online" or "offline"
	SDSyncStatus       *SDSync        `json:"sdSyncStatus,omitempty"`
	Alerts             []Alert        `json:"alerts,omitempty"`
}

// Location names where a reading was taken.
type Location struct {
	Name string `json:"name"`
}

// Telemetry is a single sensor reading for a shipment.
type Telemetry struct {
	ShipmentID    string    `json:"shipmentId"`
	Temperature   float64   `json:"temperature"`
	GasLevel      float64   `json:"gasLevel"`
	Humidity      float64   `json:"humidity"`
	Location      Location  `json:"location"`
	NetworkStatus string    `json:"networkStatus"`
	Timestamp     time.Time `json:"timestamp"`
}

// Stats are the dashboard headline numbers.
type Stats struct {
	TotalShipments  int `json:"totalShipments"`
	InTransit       int `json:"inTransit"`
	Completed       int `json:"completed"`
	BioShieldActive int `json:"bioShieldActive"`
}

// OrderRequest is the new-order form payload.
type OrderRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Crates      int    `json:"crates"`
	BioShield   bool   `json:"bioShield"`
}

// ErrNotFound is returned for unknown shipment IDs.
var ErrNotFound = fmt.Errorf("provider: shipment not found")

// Provider is the data boundary the presentation core depends on.
type Provider interface {
	Shipments(ctx context.Context) ([]Shipment, error)
	ShipmentByID(ctx context.Context, id string) (*Shipment, error)
	LatestTelemetry(ctx context.Context, shipmentID string) (*Telemetry, error)
	TelemetryHistory(ctx context.Context, shipmentID string) ([]Telemetry, error)
	Stats(ctx context.Context) (Stats, error)
	CreateOrder(ctx context.Context, req OrderRequest) (*Shipment, error)
}
