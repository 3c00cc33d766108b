// Package render serializes projected points into a self-contained HTML
// scatter plot and writes it to disk.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/template"

	"embview/internal/domain"
)

// Options control the presentation of the generated page. Zero values are
// filled with the historical defaults of the tool.
type Options struct {
	Title      string
	Colorscale string
	MarkerSize int
	ScriptURL  string
}

const (
	defaultTitle      = "Embeddings view"
	defaultColorscale = "Viridis"
	defaultMarkerSize = 8
	defaultScriptURL  = "https://cdn.plot.ly/plotly-2.32.0.min.js"
)

// HTML builds the scatter-plot page around an inlined JSON payload of
// {x, y, label} records. The plot itself is drawn client-side by plotly,
// loaded from a CDN, so viewing the page needs network access even though
// generating it does not.
type HTML struct {
	opts Options
}

func NewHTML(opts Options) *HTML {
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.Colorscale == "" {
		opts.Colorscale = defaultColorscale
	}
	if opts.MarkerSize <= 0 {
		opts.MarkerSize = defaultMarkerSize
	}
	if opts.ScriptURL == "" {
		opts.ScriptURL = defaultScriptURL
	}
	return &HTML{opts: opts}
}

type record struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// Build pairs points with labels by position, truncating to the shorter
// sequence, and renders the page with the payload inlined verbatim.
func (h *HTML) Build(points []domain.Point, labels []string) (string, error) {
	n := min(len(points), len(labels))
	records := make([]record, n)
	for i := 0; i < n; i++ {
		records[i] = record{X: points[i].X, Y: points[i].Y, Label: labels[i]}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode plot payload: %w", err)
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, map[string]any{
		"Title":      h.opts.Title,
		"Colorscale": h.opts.Colorscale,
		"MarkerSize": h.opts.MarkerSize,
		"ScriptURL":  h.opts.ScriptURL,
		"Payload":    string(payload),
	})
	if err != nil {
		return "", fmt.Errorf("render page template: %w", err)
	}
	return buf.String(), nil
}

// Write overwrites path unconditionally. No atomic rename, no backup.
func (h *HTML) Write(doc string, path string) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write view %s: %w", path, err)
	}
	return nil
}

var pageTemplate = template.Must(template.New("view").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <script src="{{.ScriptURL}}"></script>
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; }
    #plot { width: 100vw; height: 100vh; }
  </style>
</head>
<body>
  <div id="plot"></div>
  <script>
    const points = {{.Payload}};
    const trace = {
      x: points.map(p => p.x),
      y: points.map(p => p.y),
      text: points.map(p => p.label),
      hovertemplate: "%{text}<extra></extra>",
      mode: "markers",
      type: "scattergl",
      marker: {
        size: {{.MarkerSize}},
        color: points.map(p => p.y),
        colorscale: "{{.Colorscale}}",
        showscale: false,
        opacity: 0.85
      }
    };
    const layout = {
      title: "{{.Title}}",
      xaxis: { title: "PC 1" },
      yaxis: { title: "PC 2" },
      hovermode: "closest",
      margin: { l: 60, r: 20, t: 60, b: 60 },
      paper_bgcolor: "#f7f7f7",
      plot_bgcolor: "#f7f7f7"
    };
    Plotly.newPlot("plot", [trace], layout, {responsive: true});
  </script>
</body>
</html>
`))
