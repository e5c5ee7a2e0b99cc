package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/Hitargot/Qooa-Frontend/internal/overlay"
	"github.com/Hitargot/Qooa-Frontend/internal/routes"
	"github.com/Hitargot/Qooa-Frontend/internal/settings"
)

type navLink struct {
	Path   string
	Title  string
	Active bool
}

type pageData struct {
	Title    string
	Greeting string
	Nav      []navLink
	Content  template.HTML
	Source   string
	Overlay  overlay.State
	Style    settings.OverlayStyle
	Toasts   []string
}

// handlePage resolves the requested route, activates it and renders
// the full dashboard shell around the active view.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	route := routes.Resolve(r.URL)
	s.deps.Resolver.Activate(ctx, route)
	content := s.deps.Resolver.Current()

	nav := make([]navLink, 0, len(routes.All))
	for _, rt := range routes.All {
		nav = append(nav, navLink{
			Path:   routes.Path(rt),
			Title:  routes.Title(rt),
			Active: rt == content.Route,
		})
	}

	data := pageData{
		Title:    content.Title,
		Greeting: content.Greeting,
		Nav:      nav,
		Content:  template.HTML(content.HTML),
		Source:   content.Source,
		Overlay:  s.deps.Overlay.Snapshot(),
		Style:    s.deps.Settings.Load(ctx).OverlayStyle,
		Toasts:   s.deps.Toasts.Drain(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("server: rendering %s: %v", content.Route, err)
	}
}

func handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(dashboardCSS))
}

const dashboardCSS = `
body { margin: 0; font-family: system-ui, sans-serif; background: #f4f6f8; color: #1f2933; }
.topbar { display: flex; justify-content: space-between; padding: 12px 24px; background: #14532d; color: #fff; }
.sidebar ul { list-style: none; padding: 0; }
.sidebar li.active a { font-weight: bold; }
.stat-card, .shipment-card, .sensor-card { background: #fff; border-radius: 8px; padding: 16px; margin: 8px; box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.status-low { color: #3b82f6; }
.status-good { color: #16a34a; }
.status-warning { color: #d97706; }
.status-critical { color: #dc2626; }
.badge-green { background: #dcfce7; color: #166534; }
.badge-orange { background: #ffedd5; color: #9a3412; }
.badge-red { background: #fee2e2; color: #991b1b; }
.overlay-backdrop { position: fixed; inset: 0; background: rgba(0,0,0,.4); }
.overlay { background: #fff; border-radius: 8px; padding: 20px; }
.overlay-centered { margin: 10vh auto; max-width: 560px; }
.overlay-side { position: fixed; right: 0; top: 0; height: 100%; width: 380px; }
.overlay-small { max-width: 380px; }
.toast-stack { position: fixed; bottom: 16px; right: 16px; }
.toast { background: #1f2933; color: #fff; padding: 10px 16px; border-radius: 6px; margin-top: 8px; }
.form-error { color: #dc2626; }
`

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"htmlBody": func(s string) template.HTML { return template.HTML(s) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | QOOA Control Tower</title>
<link rel="stylesheet" href="/static/dashboard.css">
</head>
<body>
<header class="topbar">
  <div class="brand">QOOA Control Tower</div>
  <div class="greeting">{{.Greeting}}</div>
</header>
<nav class="sidebar">
  <ul>
  {{range .Nav}}
    <li{{if .Active}} class="active"{{end}}><a href="{{.Path}}">{{.Title}}</a></li>
  {{end}}
  </ul>
</nav>
<main data-source="{{.Source}}">
{{.Content}}
</main>
{{if .Overlay.IsOpen}}
<div class="overlay-backdrop">
  <div class="overlay overlay-{{.Style}} overlay-{{.Overlay.Size}}" role="dialog" aria-modal="true">
    <div class="overlay-header">
      <h2>{{.Overlay.Title}}</h2>
      <button class="overlay-close" data-action="overlay-close">&times;</button>
    </div>
    <div class="overlay-body">{{htmlBody .Overlay.Body}}</div>
    {{if .Overlay.Footer}}<div class="overlay-footer">{{htmlBody .Overlay.Footer}}</div>{{end}}
  </div>
</div>
{{end}}
{{if .Toasts}}
<div class="toast-stack">
  {{range .Toasts}}<div class="toast">{{.}}</div>{{end}}
</div>
{{end}}
</body>
</html>
`))
