package alerts

import "time"

// Severity grades a shipment alert. Orange alerts flag degraded
// conditions, red alerts demand intervention.
type Severity string

const (
	SeverityOrange Severity = "orange"
	SeverityRed    Severity = "red"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	return s == SeverityOrange || s == SeverityRed
}

// Channel is a delivery channel for alert notices.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

// Alert is a single shipment alert record.
type Alert struct {
	ID         string    `json:"id"`
	ShipmentID string    `json:"shipmentId"`
	Severity   Severity  `json:"severity"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}
