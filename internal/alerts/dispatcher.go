package alerts

import (
	"context"
	"fmt"
	"log"

	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

// Sender delivers an alert notice over one channel.
type Sender interface {
	Send(ctx context.Context, ch Channel, a Alert) error
}

// LogSender writes deliveries to the process log. It stands in for the
// real email, SMS and WhatsApp gateways.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, ch Channel, a Alert) error {
	log.Printf("alerts: dispatch %s alert for %s via %s: %s", a.Severity, a.ShipmentID, ch, a.Message)
	return nil
}

// Dispatcher persists alerts and fans them out over the channels the
// vendor has enabled in their settings.
type Dispatcher struct {
	store    *Store
	settings *settings.Store
	sender   Sender
}

// NewDispatcher creates a Dispatcher backed by the given store. A nil
// sender defaults to LogSender.
func NewDispatcher(store *Store, prefs *settings.Store, sender Sender) *Dispatcher {
	if sender == nil {
		sender = LogSender{}
	}
	return &Dispatcher{store: store, settings: prefs, sender: sender}
}

// Dispatch persists the alert and delivers it on every enabled channel.
// Delivery failures are logged but do not fail the dispatch; the record
// is already stored.
func (d *Dispatcher) Dispatch(ctx context.Context, a Alert) (*Alert, error) {
	created, err := d.store.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("creating alert: %w", err)
	}

	for _, ch := range d.enabledChannels(ctx) {
		if err := d.sender.Send(ctx, ch, *created); err != nil {
			log.Printf("alerts: %s delivery failed for %s: %v", ch, created.ID, err)
		}
	}
	return created, nil
}

func (d *Dispatcher) enabledChannels(ctx context.Context) []Channel {
	prefs := d.settings.Load(ctx)
	var out []Channel
	if prefs.EmailAlerts {
		out = append(out, ChannelEmail)
	}
	if prefs.SMSAlerts {
		out = append(out, ChannelSMS)
	}
	if prefs.WhatsAppAlerts {
		out = append(out, ChannelWhatsApp)
	}
	return out
}
