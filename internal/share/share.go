// Package share distributes a telemetry snapshot through the best
// available channel. A native share target is preferred, the clipboard
// is the fallback, and a plain prompt is the last resort.
package share

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/provider"
)

// ErrInvalidState is returned by a Sharer when an earlier native share
// has not settled yet. The controller retries the clipboard fallback
// after a short delay instead of immediately.
var ErrInvalidState = errors.New("share: target in invalid state")

// Payload is what gets handed to the share target.
type Payload struct {
	Title string
	Text  string
	URL   string
}

// Sharer is a native share target. A nil Sharer on the Controller
// means the platform has none and the clipboard is used directly.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// Clipboard copies plain text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Prompter displays text for manual copying when no clipboard exists.
type Prompter interface {
	Prompt(label, text string)
}

// Controller builds the telemetry payload for a shipment and walks the
// share fallback chain. At most one native share runs at a time.
type Controller struct {
	sharer     Sharer
	clipboard  Clipboard
	prompter   Prompter
	provider   provider.Provider
	notifier   overlay.Notifier
	baseURL    string
	retryDelay time.Duration

	mu         sync.Mutex
	inProgress bool
}

func NewController(p provider.Provider, notifier overlay.Notifier, baseURL string) *Controller {
	return &Controller{
		provider:   p,
		notifier:   notifier,
		baseURL:    baseURL,
		retryDelay: 300 * time.Millisecond,
	}
}

// SetSharer installs a native share target.
func (c *Controller) SetSharer(s Sharer) { c.sharer = s }

// SetClipboard installs a clipboard target.
func (c *Controller) SetClipboard(cl Clipboard) { c.clipboard = cl }

// SetPrompter installs the last-resort prompt target.
func (c *Controller) SetPrompter(p Prompter) { c.prompter = p }

// ShareSnapshot shares the latest telemetry of the given shipment.
func (c *Controller) ShareSnapshot(ctx context.Context, shipmentID string) {
	shipment, err := c.provider.ShipmentByID(ctx, shipmentID)
	if err != nil {
		c.notifier.Toast("Telemetry not available to share")
		return
	}
	telemetry, err := c.provider.LatestTelemetry(ctx, shipmentID)
	if err != nil || telemetry == nil {
		c.notifier.Toast("Telemetry not available to share")
		return
	}

	payload := buildPayload(shipment, telemetry, c.baseURL)

	if c.sharer == nil {
		c.copyText(ctx, payload.Text)
		return
	}

	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		c.notifier.Toast("Previous share still in progress. Please complete it before sharing again.")
		return
	}
	c.inProgress = true
	c.mu.Unlock()

	err = c.sharer.Share(ctx, payload)

	c.mu.Lock()
	c.inProgress = false
	c.mu.Unlock()

	if err == nil {
		c.notifier.Toast("Telemetry shared")
		return
	}
	log.Printf("share: share failed: %v", err)
	if errors.Is(err, ErrInvalidState) {
		// Give the native target a moment to settle before copying.
		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return
		}
	}
	c.copyText(ctx, payload.Text)
}

func (c *Controller) copyText(ctx context.Context, text string) {
	if c.clipboard != nil {
		err := c.clipboard.WriteText(ctx, text)
		if err == nil {
			c.notifier.Toast("Telemetry copied to clipboard")
			return
		}
		log.Printf("share: clipboard failed: %v", err)
		c.notifier.Toast("Unable to copy telemetry")
	}
	if c.prompter != nil {
		c.prompter.Prompt("Copy telemetry data", text)
	}
}

func buildPayload(s *provider.Shipment, t *provider.Telemetry, baseURL string) Payload {
	text := fmt.Sprintf("Shipment: %s\nTruck: %s\nLocation: %s\nTemperature: %g°C\nEthylene Gas: %g ppm\nHumidity: %g%%\nStatus: %s",
		s.ID, s.TruckID, t.Location.Name, t.Temperature, t.GasLevel, t.Humidity, s.QualityStatus)
	return Payload{
		Title: "Telemetry — " + s.ID,
		Text:  text,
		URL:   baseURL + "/#telemetry",
	}
}
