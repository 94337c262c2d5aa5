package dashboard

import (
	"fmt"
	"image/color"
	"net/http"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/gridcare-data/coverage.report/internal/httputil"
	"github.com/gridcare-data/coverage.report/internal/view"
)

// handleMapPlot exports the placement map as a PNG for download and reports.
func (ws *WebServer) handleMapPlot(w http.ResponseWriter, r *http.Request) {
	result, summaries, err := ws.currentResult()
	if err != nil {
		httputil.NotFound(w, "no simulation result available")
		return
	}

	resp := result.Response
	extent := float64(resp.GridSize)
	if extent < 1 {
		extent = 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Hospital Placement (n=%d, k=%d)", len(resp.Neighborhoods), len(resp.Hospitals))
	p.X.Label.Text = "X (km)"
	p.Y.Label.Text = "Y (km)"
	p.X.Min, p.X.Max = 0, extent
	p.Y.Min, p.Y.Max = 0, extent
	p.Add(plotter.NewGrid())

	byCluster := make(map[int]plotter.XYs)
	for _, nb := range result.Neighborhoods {
		byCluster[nb.Cluster] = append(byCluster[nb.Cluster], plotter.XY{X: nb.X, Y: nb.Y})
	}

	for idx, summary := range summaries {
		pts := byCluster[idx]
		if len(pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to build scatter: %v", err))
			return
		}
		sc.GlyphStyle.Color = hexColor(summary.Color)
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add(fmt.Sprintf("H%d", summary.HospitalID), sc)
	}

	if pts := byCluster[view.ClusterUnassigned]; len(pts) > 0 {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			httputil.InternalServerError(w, fmt.Sprintf("failed to build scatter: %v", err))
			return
		}
		sc.GlyphStyle.Color = hexColor(view.UnassignedColor)
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
	}

	hospitalPts := make(plotter.XYs, 0, len(resp.Hospitals))
	for _, h := range resp.Hospitals {
		hospitalPts = append(hospitalPts, plotter.XY{X: h.X, Y: h.Y})
	}
	hs, err := plotter.NewScatter(hospitalPts)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to build scatter: %v", err))
		return
	}
	hs.GlyphStyle.Color = color.Black
	hs.GlyphStyle.Radius = vg.Points(4)
	hs.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(hs)
	p.Legend.Add("hospitals", hs)

	wt, err := p.WriterTo(7*vg.Inch, 7*vg.Inch, "png")
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render plot: %v", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := wt.WriteTo(w); err != nil {
		// Headers already sent; nothing sensible to return.
		return
	}
}

// hexColor parses a #rrggbb palette entry. Falls back to black on malformed
// input.
func hexColor(s string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.Black
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
