package dashboard

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gridcare-data/coverage.report/internal/httputil"
	"github.com/gridcare-data/coverage.report/internal/view"
)

const (
	svgViewport = 640.0
	svgPadding  = 24.0
)

// handleMapSVG renders the placement map as a standalone SVG document.
func (ws *WebServer) handleMapSVG(w http.ResponseWriter, r *http.Request) {
	result, summaries, err := ws.currentResult()
	if err != nil {
		httputil.NotFound(w, "no simulation result available")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write([]byte(renderMapSVG(result, summaries)))
}

// renderMapSVG projects every element through the shared geometry projector.
// SVG's y axis grows downward, so y pixel coordinates are mirrored.
func renderMapSVG(result *view.EnrichedResult, summaries []view.ClusterSummary) string {
	resp := result.Response
	extent := float64(resp.GridSize)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`,
		svgViewport, svgViewport, svgViewport, svgViewport)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)

	// Gridlines with rounded real-world labels, both axes.
	for _, tick := range view.GridTicks(extent, svgViewport, svgPadding) {
		x := tick.Pos
		y := svgViewport - tick.Pos
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e0e0e0" stroke-width="1"/>`,
			x, svgPadding, x, svgViewport-svgPadding)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e0e0e0" stroke-width="1"/>`,
			svgPadding, y, svgViewport-svgPadding, y)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" fill="#888888" text-anchor="middle">%s</text>`,
			x, svgViewport-6, tick.Label)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-size="10" fill="#888888" text-anchor="start">%s</text>`,
			2.0, y+3, tick.Label)
	}

	for _, nb := range result.Neighborhoods {
		cx := view.Project(nb.X, extent, svgViewport, svgPadding)
		cy := svgViewport - view.Project(nb.Y, extent, svgViewport, svgPadding)
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3.5" fill="%s"><title>#%d cluster %d</title></circle>`,
			cx, cy, view.ColorFor(nb.Cluster), nb.ID, nb.Cluster)
	}

	for idx, summary := range summaries {
		h := summary.Hospital
		cx := view.Project(h.X, extent, svgViewport, svgPadding)
		cy := svgViewport - view.Project(h.Y, extent, svgViewport, svgPadding)
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="12" height="12" fill="%s" stroke="#111111" stroke-width="1.5" transform="rotate(45 %.1f %.1f)"><title>H%d: %d neighborhoods, avg %.2f km</title></rect>`,
			cx-6, cy-6, view.ColorFor(idx), cx, cy, summary.HospitalID, summary.Count, summary.AverageDistance)
	}

	b.WriteString(`</svg>`)
	return b.String()
}
