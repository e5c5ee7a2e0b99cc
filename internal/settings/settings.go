// Package settings persists the dashboard preferences blob. A missing
// or malformed blob yields the documented defaults wholesale; there is
// no per-field repair or migration.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Hitargot/Qooa-Frontend/internal/kv"
)

// Key is the kv entry holding the settings blob.
const Key = "qooa_settings"

// OverlayStyle selects how the shared overlay is positioned.
type OverlayStyle string

const (
	StyleCentered OverlayStyle = "centered"
	StyleSide     OverlayStyle = "side"
)

// OverlaySize is an overlay size variant.
type OverlaySize string

const (
	SizeRegular OverlaySize = "regular"
	SizeSmall   OverlaySize = "small"
)

// Settings holds the user's dashboard preferences.
type Settings struct {
	EmailAlerts         bool         `json:"emailAlerts"`
	SMSAlerts           bool         `json:"smsAlerts"`
	WhatsAppAlerts      bool         `json:"whatsappAlerts"`
	OverlayStyle        OverlayStyle `json:"overlayStyle"`
	DefaultOverlaySize  OverlaySize  `json:"defaultOverlaySize"`
	CriticalTemperature float64      `json:"criticalTemp"`
	CriticalGas         float64      `json:"criticalGas"`
}

// Defaults returns the hard-coded default settings.
func Defaults() Settings {
	return Settings{
		EmailAlerts:         true,
		SMSAlerts:           true,
		WhatsAppAlerts:      false,
		OverlayStyle:        StyleCentered,
		DefaultOverlaySize:  SizeRegular,
		CriticalTemperature: 28,
		CriticalGas:         300,
	}
}

// Store reads and writes the settings blob.
type Store struct {
	kv kv.Store
}

// NewStore creates a Store on the given key-value backend.
func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Load returns the persisted settings, or the defaults when the blob
// is absent or does not parse.
func (s *Store) Load(ctx context.Context) Settings {
	raw, err := s.kv.Get(ctx, Key)
	if err != nil {
		return Defaults()
	}
	var out Settings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Defaults()
	}
	return out
}

// Save replaces the persisted settings wholesale.
func (s *Store) Save(ctx context.Context, in Settings) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshalling settings: %w", err)
	}
	if err := s.kv.Set(ctx, Key, string(raw)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// Reset writes the defaults and returns them.
func (s *Store) Reset(ctx context.Context) (Settings, error) {
	def := Defaults()
	if err := s.Save(ctx, def); err != nil {
		return Settings{}, err
	}
	return def, nil
}

// Exists reports whether a settings blob has been saved.
func (s *Store) Exists(ctx context.Context) bool {
	_, err := s.kv.Get(ctx, Key)
	return !errors.Is(err, kv.ErrNotFound) && err == nil
}
