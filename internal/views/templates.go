package views

import "html/template"

var viewTemplates = template.Must(template.New("views").Parse(`
{{define "dashboard"}}
<header class="dashboard-header">
  <div class="header-left">
    <h1>Control Tower</h1>
    <p id="vendorGreeting">{{.Greeting}}</p>
  </div>
  <div class="header-right">
    <button id="newOrderBtn" class="btn-primary">New Order</button>
  </div>
</header>
<section class="stats-section">
  <div class="stats-grid">
    <div class="stat-card"><h3 id="totalShipments">{{.Stats.TotalShipments}}</h3><p>Total Shipments</p></div>
    <div class="stat-card"><h3 id="inTransit">{{.Stats.InTransit}}</h3><p>In Transit</p></div>
    <div class="stat-card"><h3 id="completed">{{.Stats.Completed}}</h3><p>Completed</p></div>
    <div class="stat-card"><h3 id="bioShieldActive">{{.Stats.BioShieldActive}}</h3><p>Bio-Shield Active</p></div>
  </div>
</section>
<section class="shipments-section">
  <div id="shipmentsContainer">{{range .Cards}}{{template "shipmentCard" .}}{{end}}</div>
</section>
{{end}}

{{define "shipmentCard"}}
<div class="shipment-card" data-shipment="{{.ID}}">
  <div class="shipment-header">
    <div>
      <div class="shipment-id">{{.ID}}</div>
      <div class="shipment-route">{{.Origin}} &rarr; {{.Destination}}</div>
    </div>
    <span class="badge {{.QualityClass}}">{{.Quality}}</span>
  </div>
  <div class="shipment-details">
    <div class="detail-item"><span class="detail-label">Truck ID</span><div class="detail-value">{{.TruckID}}</div></div>
    <div class="detail-item"><span class="detail-label">Driver</span><div class="detail-value">{{.Driver}}</div></div>
    <div class="detail-item"><span class="detail-label">Crates</span><div class="detail-value">{{.Crates}}</div></div>
    <div class="detail-item"><span class="detail-label">Current Location</span><div class="detail-value">{{.Location}}</div></div>
  </div>
  <div class="shipment-triage">
    <span class="badge {{.TriageClass}}">{{.TriageLabel}}</span>
    {{if .FieldHeat}}<span class="badge badge-fieldheat">Field Heat Extracted</span>{{end}}
  </div>
  <div class="shipment-badges">
    <span class="badge {{.NetworkClass}}">{{.NetworkLabel}}</span>
    {{if .SyncLabel}}<span class="badge badge-sync">{{.SyncLabel}}</span>{{end}}
    <span class="badge {{.BioShieldClass}}">{{.BioShieldLabel}}</span>
    {{if .AlertLabel}}<span class="badge {{.AlertClass}}">{{.AlertLabel}}</span>{{end}}
    <span class="badge badge-in-transit">{{.Status}}</span>
  </div>
  <div class="shipment-actions">
    <button class="btn-small" data-action="telemetry-detail" data-shipment="{{.ID}}">View Telemetry</button>
    {{if .AlertLabel}}<button class="btn-small" data-action="view-alerts" data-shipment="{{.ID}}">View Alerts</button>{{end}}
  </div>
</div>
{{end}}

{{define "shipments"}}
<header class="dashboard-header">
  <div class="header-left">
    <h1>All Shipments</h1>
    <p>Manage and track all shipments</p>
  </div>
  <div class="header-right">
    <button id="newOrderBtn" class="btn-primary">New Order</button>
  </div>
</header>
<section class="shipments-section">
  <div id="shipmentsContainer">{{range .Cards}}{{template "shipmentCard" .}}{{end}}</div>
</section>
{{end}}

{{define "telemetry"}}
<header class="dashboard-header">
  <div class="header-left">
    <h1>Live Telemetry</h1>
    <p>Real-time sensor monitoring for all shipments</p>
  </div>
</header>
<section class="shipments-section">
  <div class="telemetry-grid">
  {{range .Sensors}}
    <div class="sensor-card" data-shipment="{{.ID}}">
      <div class="sensor-data">
        <div class="sensor-head">
          <div>
            <div class="shipment-id">{{.ID}}</div>
            <div class="sensor-meta">{{.TruckID}} &bull; {{.Location}}</div>
          </div>
          <span class="badge {{.QualityClass}}">{{.Quality}}</span>
        </div>
        <div class="sensor-readings">
          <div><div class="sensor-name">Temperature</div><div class="sensor-value {{.TempClass}}">{{.Temperature}}&deg;C</div><div class="sensor-unit">{{.TempLabel}}</div></div>
          <div><div class="sensor-name">Ethylene Gas</div><div class="sensor-value {{.GasClass}}">{{.Gas}} ppm</div><div class="sensor-unit">{{.GasLabel}}</div></div>
          <div><div class="sensor-name">Humidity</div><div class="sensor-value {{.HumidityClass}}">{{.Humidity}}%</div><div class="sensor-unit">{{.HumidityLabel}}</div></div>
        </div>
        <div class="sensor-actions">
          <button class="btn-small" data-action="telemetry-detail" data-shipment="{{.ID}}">View Details</button>
          <button class="btn-small btn-share" data-action="share-telemetry" data-shipment="{{.ID}}">Share</button>
        </div>
      </div>
    </div>
  {{end}}
  </div>
</section>
{{end}}

{{define "reports"}}
<header class="dashboard-header">
  <div class="header-left">
    <h1>Reports &amp; Analytics</h1>
    <p>Performance metrics and quality reports</p>
  </div>
</header>
<section class="stats-section">
  <div class="stats-grid">
    <div class="stat-card"><h3>{{.Stats.TotalShipments}}</h3><p>Total Shipments</p></div>
    <div class="stat-card"><h3>{{.Stats.InTransit}}</h3><p>In Transit</p></div>
    <div class="stat-card"><h3>{{.Stats.Completed}}</h3><p>Completed</p></div>
    <div class="stat-card"><h3>{{.Stats.BioShieldActive}}</h3><p>Bio-Shield Active</p></div>
  </div>
</section>
<section class="shipments-section">
  <h2>Quality Reports</h2>
  <table class="reports-table">
    <thead>
      <tr><th>Shipment ID</th><th>Route</th><th>Quality Status</th><th>Hub Triage</th><th>Bio-Shield</th></tr>
    </thead>
    <tbody>
    {{range .Rows}}
      <tr>
        <td>{{.ID}}</td>
        <td>{{.Origin}} &rarr; {{.Destination}}</td>
        <td><span class="badge {{.QualityClass}}">{{.Quality}}</span></td>
        <td><span class="badge {{.TriageClass}}">{{.TriageLabel}}</span></td>
        <td>{{if .BioShield}}Yes{{else}}No{{end}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>
</section>
{{end}}

{{define "settings"}}
<header class="dashboard-header">
  <div class="header-left">
    <h1>Settings</h1>
    <p>Configure your dashboard preferences</p>
  </div>
</header>
<section class="shipments-section">
  <form id="settingsForm" class="settings-form">
    <fieldset>
      <legend>Notification Preferences</legend>
      <label><input type="checkbox" id="emailAlerts" name="emailAlerts"{{if .Settings.EmailAlerts}} checked{{end}}> Email alerts for critical temperature</label>
      <label><input type="checkbox" id="smsAlerts" name="smsAlerts"{{if .Settings.SMSAlerts}} checked{{end}}> SMS alerts for gas level warnings</label>
      <label><input type="checkbox" id="whatsappAlerts" name="whatsappAlerts"{{if .Settings.WhatsAppAlerts}} checked{{end}}> WhatsApp notifications</label>
    </fieldset>
    <fieldset>
      <legend>Overlay</legend>
      <label><input type="checkbox" id="overlayCentered" name="overlayCentered"{{if .Centered}} checked{{end}}> Use centered overlays</label>
      <select id="defaultOverlaySize" name="defaultOverlaySize">
        <option value="regular"{{if eq .Settings.DefaultOverlaySize "regular"}} selected{{end}}>Regular (centered)</option>
        <option value="small"{{if eq .Settings.DefaultOverlaySize "small"}} selected{{end}}>Small (compact)</option>
      </select>
    </fieldset>
    <fieldset>
      <legend>Quality Thresholds</legend>
      <label>Critical Temperature (&deg;C) <input type="number" id="criticalTemp" name="criticalTemp" value="{{.Settings.CriticalTemperature}}" min="15" max="35"></label>
      <label>Critical Gas Level (ppm) <input type="number" id="criticalGas" name="criticalGas" value="{{.Settings.CriticalGas}}" min="50" max="500"></label>
    </fieldset>
    <div class="settings-actions">
      <button type="submit" class="btn-primary" id="saveSettingsBtn">Save Settings</button>
      <button type="button" class="btn-secondary" data-action="reset-settings">Reset to Default</button>
      <button type="button" class="btn-secondary" id="changePasswordBtn" data-action="change-password">Change Password</button>
    </div>
  </form>
</section>
{{end}}
`))
