package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hitargot/Qooa-Frontend/internal/provider"
	"github.com/Hitargot/Qooa-Frontend/internal/routes"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
	"github.com/Hitargot/Qooa-Frontend/internal/status"
)

// build renders the local view for a route. The switch is exhaustive
// over the route table; an unknown route has already been normalized
// away by Activate.
func (r *Resolver) build(ctx context.Context, route routes.Route) (string, error) {
	switch route {
	case routes.Dashboard:
		return r.buildDashboard(ctx)
	case routes.Shipments:
		return r.buildShipments(ctx)
	case routes.Telemetry:
		return r.buildTelemetry(ctx)
	case routes.Reports:
		return r.buildReports(ctx)
	case routes.Settings:
		return r.buildSettings(ctx)
	}
	return "", fmt.Errorf("no builder for route %q", route)
}

// shipmentCard is the view model for one shipment card.
type shipmentCard struct {
	ID, Origin, Destination    string
	TruckID, Driver, Location  string
	Crates                     int
	Status                     string
	Quality, QualityClass      string
	TriageLabel, TriageClass   string
	FieldHeat                  bool
	NetworkLabel, NetworkClass string
	SyncLabel                  string
	BioShieldLabel             string
	BioShieldClass             string
	AlertLabel, AlertClass     string
}

func qualityClass(q provider.QualityStatus) string {
	switch q {
	case provider.QualityGreen:
		return "badge-green"
	case provider.QualityOrange:
		return "badge-orange"
	default:
		return "badge-red"
	}
}

func triageDisplay(d provider.TriageDecision) (label, class string) {
	switch d {
	case provider.TriageAccepted:
		return "Accepted", "badge-green"
	case provider.TriageCooled:
		return "Pre-Cooled", "badge-orange"
	case provider.TriageRejected:
		return "Rejected", "badge-red"
	default:
		return "Pending", "badge-gray"
	}
}

func newShipmentCard(sh provider.Shipment) shipmentCard {
	c := shipmentCard{
		ID:          sh.ID,
		Origin:      sh.Origin,
		Destination: sh.Destination,
		TruckID:     sh.TruckID,
		Driver:      sh.DriverName,
		Location:    sh.CurrentLocation,
		Crates:      sh.CrateCount,
		Status:      sh.Status,
		Quality:     string(sh.QualityStatus),
		FieldHeat:   sh.FieldHeatDetected,
	}
	c.QualityClass = qualityClass(sh.QualityStatus)
	c.TriageLabel, c.TriageClass = triageDisplay(sh.HubTriageDecision)

	if sh.NetworkStatus == "offline" {
		c.NetworkLabel, c.NetworkClass = "Cached to SD", "badge-offline"
		if sh.SDSyncStatus != nil && sh.SDSyncStatus.PendingRecords > 0 {
			c.SyncLabel = fmt.Sprintf("%d records pending sync", sh.SDSyncStatus.PendingRecords)
		}
	} else {
		c.NetworkLabel, c.NetworkClass = "Online", "badge-online"
		if sh.SDSyncStatus != nil && !sh.SDSyncStatus.LastSyncTime.IsZero() {
			c.SyncLabel = "Synced at " + sh.SDSyncStatus.LastSyncTime.Format("15:04")
		}
	}

	if sh.BioShieldApplied {
		c.BioShieldLabel, c.BioShieldClass = "Bio-Shield", "badge-green"
	} else {
		c.BioShieldLabel, c.BioShieldClass = "No Bio-Shield", "badge-red"
	}

	critical, warnings := 0, 0
	for _, a := range sh.Alerts {
		switch a.Severity {
		case "red":
			critical++
		case "orange":
			warnings++
		}
	}
	if critical > 0 {
		c.AlertLabel = fmt.Sprintf("%d Critical Alert%s", critical, plural(critical))
		c.AlertClass = "badge-red"
	} else if warnings > 0 {
		c.AlertLabel = fmt.Sprintf("%d Warning%s", warnings, plural(warnings))
		c.AlertClass = "badge-orange"
	}
	return c
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// shipmentCards renders the card list used by the dashboard's
// secondary pass and the shipments view.
func (r *Resolver) shipmentCards(ctx context.Context) (string, error) {
	shipments, err := r.provider.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("listing shipments: %w", err)
	}
	if len(shipments) == 0 {
		return `<p class="loading">No shipments available</p>`, nil
	}

	var sb strings.Builder
	for _, sh := range shipments {
		if err := viewTemplates.ExecuteTemplate(&sb, "shipmentCard", newShipmentCard(sh)); err != nil {
			return "", fmt.Errorf("rendering shipment card: %w", err)
		}
	}
	return sb.String(), nil
}

func (r *Resolver) buildDashboard(ctx context.Context) (string, error) {
	shipments, err := r.provider.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("listing shipments: %w", err)
	}
	stats, err := r.provider.Stats(ctx)
	if err != nil {
		return "", fmt.Errorf("reading stats: %w", err)
	}

	cards := make([]shipmentCard, 0, len(shipments))
	for _, sh := range shipments {
		cards = append(cards, newShipmentCard(sh))
	}

	data := struct {
		Greeting string
		Stats    provider.Stats
		Cards    []shipmentCard
	}{r.greeting(ctx), stats, cards}

	var sb strings.Builder
	if err := viewTemplates.ExecuteTemplate(&sb, "dashboard", data); err != nil {
		return "", fmt.Errorf("rendering dashboard: %w", err)
	}
	return sb.String(), nil
}

func (r *Resolver) buildShipments(ctx context.Context) (string, error) {
	shipments, err := r.provider.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("listing shipments: %w", err)
	}
	cards := make([]shipmentCard, 0, len(shipments))
	for _, sh := range shipments {
		cards = append(cards, newShipmentCard(sh))
	}

	var sb strings.Builder
	if err := viewTemplates.ExecuteTemplate(&sb, "shipments", struct{ Cards []shipmentCard }{cards}); err != nil {
		return "", fmt.Errorf("rendering shipments: %w", err)
	}
	return sb.String(), nil
}

// sensorCard is the view model for one telemetry card.
type sensorCard struct {
	ID, TruckID, Location string
	Quality, QualityClass string
	Temperature           float64
	TempClass, TempLabel  string
	Gas                   float64
	GasClass, GasLabel    string
	Humidity              float64
	HumidityClass         string
	HumidityLabel         string
}

func (r *Resolver) buildTelemetry(ctx context.Context) (string, error) {
	shipments, err := r.provider.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("listing shipments: %w", err)
	}

	var sensors []sensorCard
	for _, sh := range shipments {
		latest, err := r.provider.LatestTelemetry(ctx, sh.ID)
		if err != nil {
			return "", fmt.Errorf("reading telemetry for %s: %w", sh.ID, err)
		}
		if latest == nil {
			continue
		}

		temp := status.Temperature(latest.Temperature)
		gas := status.Gas(latest.GasLevel)
		humidity := status.Humidity(latest.Humidity)
		sensors = append(sensors, sensorCard{
			ID:            sh.ID,
			TruckID:       sh.TruckID,
			Location:      latest.Location.Name,
			Quality:       string(sh.QualityStatus),
			QualityClass:  qualityClass(sh.QualityStatus),
			Temperature:   latest.Temperature,
			TempClass:     temp.Class,
			TempLabel:     temp.Label,
			Gas:           latest.GasLevel,
			GasClass:      gas.Class,
			GasLabel:      gas.Label,
			Humidity:      latest.Humidity,
			HumidityClass: humidity.Class,
			HumidityLabel: humidity.Label,
		})
	}

	var sb strings.Builder
	if err := viewTemplates.ExecuteTemplate(&sb, "telemetry", struct{ Sensors []sensorCard }{sensors}); err != nil {
		return "", fmt.Errorf("rendering telemetry: %w", err)
	}
	return sb.String(), nil
}

type reportRow struct {
	ID, Origin, Destination  string
	Quality, QualityClass    string
	TriageLabel, TriageClass string
	BioShield                bool
}

func (r *Resolver) buildReports(ctx context.Context) (string, error) {
	shipments, err := r.provider.Shipments(ctx)
	if err != nil {
		return "", fmt.Errorf("listing shipments: %w", err)
	}
	stats, err := r.provider.Stats(ctx)
	if err != nil {
		return "", fmt.Errorf("reading stats: %w", err)
	}

	rows := make([]reportRow, 0, len(shipments))
	for _, sh := range shipments {
		row := reportRow{
			ID:           sh.ID,
			Origin:       sh.Origin,
			Destination:  sh.Destination,
			Quality:      string(sh.QualityStatus),
			QualityClass: qualityClass(sh.QualityStatus),
			BioShield:    sh.BioShieldApplied,
		}
		row.TriageLabel, row.TriageClass = triageDisplay(sh.HubTriageDecision)
		rows = append(rows, row)
	}

	data := struct {
		Stats provider.Stats
		Rows  []reportRow
	}{stats, rows}

	var sb strings.Builder
	if err := viewTemplates.ExecuteTemplate(&sb, "reports", data); err != nil {
		return "", fmt.Errorf("rendering reports: %w", err)
	}
	return sb.String(), nil
}

func (r *Resolver) buildSettings(ctx context.Context) (string, error) {
	current := r.settings.Load(ctx)
	data := struct {
		Settings settings.Settings
		Centered bool
	}{current, current.OverlayStyle != settings.StyleSide}

	var sb strings.Builder
	if err := viewTemplates.ExecuteTemplate(&sb, "settings", data); err != nil {
		return "", fmt.Errorf("rendering settings: %w", err)
	}
	return sb.String(), nil
}
