// Package session reads and writes the authenticated vendor session.
// Two key names are in circulation from earlier releases; reads check
// both and a malformed blob under either clears both, treating the
// user as logged out rather than crashing the caller.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Hitargot/Qooa-Frontend/internal/kv"
)

// The current and legacy kv keys for the session blob.
const (
	VendorKey = "qooa_vendor_session"
	LegacyKey = "qooa_session"
)

// Vendor identifies the logged-in vendor.
type Vendor struct {
	Name string `json:"name"`
}

// Session is the persisted authentication state.
type Session struct {
	Token  string `json:"token"`
	Vendor Vendor `json:"vendor"`
}

// Store reads and writes the session blob.
type Store struct {
	kv kv.Store
}

// NewStore creates a Store on the given key-value backend.
func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Check returns the current session, or nil when no session exists.
// A blob that fails to parse is removed (both keys) and treated as
// "no session".
func (s *Store) Check(ctx context.Context) *Session {
	raw, err := s.kv.Get(ctx, VendorKey)
	if err != nil {
		raw, err = s.kv.Get(ctx, LegacyKey)
	}
	if err != nil {
		return nil
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.Clear(ctx)
		return nil
	}
	return &sess
}

// Token returns the bearer token of the current session, or "".
func (s *Store) Token(ctx context.Context) string {
	if sess := s.Check(ctx); sess != nil {
		return sess.Token
	}
	return ""
}

// Save persists the session under the current key.
func (s *Store) Save(ctx context.Context, sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	if err := s.kv.Set(ctx, VendorKey, string(raw)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes both session keys (logout, or corruption recovery).
func (s *Store) Clear(ctx context.Context) {
	s.kv.Delete(ctx, VendorKey)
	s.kv.Delete(ctx, LegacyKey)
}
