package alerts

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Hitargot/Qooa-Frontend/internal/db"
	"github.com/google/uuid"
)

// ListFilter controls which alerts are returned by List.
type ListFilter struct {
	ShipmentID string
	Severity   Severity
	Since      time.Time
	Limit      int
	Offset     int
}

// Store provides CRUD operations for shipment alerts.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new alert. If a.ID is empty a UUID is generated.
func (s *Store) Create(ctx context.Context, a Alert) (*Alert, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if !a.Severity.Valid() {
		return nil, fmt.Errorf("invalid severity %q", a.Severity)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, shipment_id, severity, message)
		VALUES (?, ?, ?, ?)`,
		a.ID, a.ShipmentID, string(a.Severity), a.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting alert: %w", err)
	}
	return s.GetByID(ctx, a.ID)
}

// GetByID retrieves a single alert.
func (s *Store) GetByID(ctx context.Context, id string) (*Alert, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, shipment_id, severity, message, created_at
		FROM alerts WHERE id = ?`, id)

	a, err := scanAlert(row)
	if err != nil {
		return nil, fmt.Errorf("alert %s: %w", id, err)
	}
	return a, nil
}

// List returns alerts matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Alert, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.ShipmentID != "" {
		clauses = append(clauses, "shipment_id = ?")
		args = append(args, filter.ShipmentID)
	}
	if filter.Severity != "" {
		clauses = append(clauses, "severity = ?")
		args = append(args, string(filter.Severity))
	}
	if !filter.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, shipment_id, severity, message, created_at FROM alerts"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var result []Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

// ListByShipment returns every alert raised for one shipment.
func (s *Store) ListByShipment(ctx context.Context, shipmentID string) ([]Alert, error) {
	return s.List(ctx, ListFilter{ShipmentID: shipmentID})
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAlert(sc scanner) (*Alert, error) {
	var (
		a        Alert
		severity string
		ts       string
	)
	if err := sc.Scan(&a.ID, &a.ShipmentID, &severity, &a.Message, &ts); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("not found")
		}
		return nil, err
	}
	a.Severity = Severity(severity)
	if t, err := time.Parse(time.DateTime, ts); err == nil {
		a.CreatedAt = t
	} else if t, err := time.Parse(time.RFC3339, ts); err == nil {
		a.CreatedAt = t
	}
	return &a, nil
}
