package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gridcare-data/coverage.report/internal/httputil"
	"github.com/gridcare-data/coverage.report/internal/view"
)

type renderable interface {
	Render(w io.Writer) error
}

func renderChart(w http.ResponseWriter, chart renderable) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleMapChart renders the placement map: one scatter series per cluster
// colored from the palette, hospitals overlaid as diamonds.
func (ws *WebServer) handleMapChart(w http.ResponseWriter, r *http.Request) {
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

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Hospital Placement Map", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title: "Hospital Placement",
			Subtitle: fmt.Sprintf("n=%d k=%d grid=%d iterations=%d",
				len(resp.Neighborhoods), len(resp.Hospitals), resp.GridSize, resp.Iterations),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: extent, Name: "X (km)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: extent, Name: "Y (km)", NameLocation: "middle", NameGap: 30}),
	)

	// Group neighborhoods per cluster so each series carries its own color.
	byCluster := make(map[int][]opts.ScatterData)
	for _, nb := range result.Neighborhoods {
		byCluster[nb.Cluster] = append(byCluster[nb.Cluster], opts.ScatterData{Value: []interface{}{nb.X, nb.Y}})
	}

	for idx, summary := range summaries {
		scatter.AddSeries(fmt.Sprintf("H%d cluster", summary.HospitalID), byCluster[idx],
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: summary.Color}),
		)
	}
	if unassigned := byCluster[view.ClusterUnassigned]; len(unassigned) > 0 {
		scatter.AddSeries("unassigned", unassigned,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: view.UnassignedColor}),
		)
	}

	hospitalPts := make([]opts.ScatterData, 0, len(resp.Hospitals))
	for _, h := range resp.Hospitals {
		hospitalPts = append(hospitalPts, opts.ScatterData{Value: []interface{}{h.X, h.Y}, Symbol: "diamond"})
	}
	scatter.AddSeries("hospitals", hospitalPts,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 14}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#111111"}),
	)

	renderChart(w, scatter)
}

// handleClusterChart renders per-cluster membership counts and distances as
// a bar chart, one bar group per hospital in server order.
func (ws *WebServer) handleClusterChart(w http.ResponseWriter, r *http.Request) {
	result, _, err := ws.currentResult()
	if err != nil {
		httputil.NotFound(w, "no simulation result available")
		return
	}

	rows := view.ClusterChartRows(result.Response.ClusterStats)

	labels := make([]string, 0, len(rows))
	counts := make([]opts.BarData, 0, len(rows))
	avgs := make([]opts.BarData, 0, len(rows))
	maxes := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.HospitalLabel)
		counts = append(counts, opts.BarData{Value: row.Count, ItemStyle: &opts.ItemStyle{Color: row.Color}})
		avgs = append(avgs, opts.BarData{Value: row.Avg})
		maxes = append(maxes, opts.BarData{Value: row.Max})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Cluster Statistics", Width: "100%", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: "Cluster Statistics", Subtitle: fmt.Sprintf("%d clusters", len(rows))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("neighborhoods", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		).
		AddSeries("avg distance (km)", avgs).
		AddSeries("max distance (km)", maxes)

	renderChart(w, bar)
}

// handleHistogramChart renders the service-provided distance histogram.
func (ws *WebServer) handleHistogramChart(w http.ResponseWriter, r *http.Request) {
	result, _, err := ws.currentResult()
	if err != nil {
		httputil.NotFound(w, "no simulation result available")
		return
	}

	rows := view.HistogramRows(result.Response.DistanceHistogram)

	labels := make([]string, 0, len(rows))
	counts := make([]opts.BarData, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row.Label)
		counts = append(counts, opts.BarData{Value: row.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Distance Histogram", Width: "100%", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: "Travel Distance Histogram", Subtitle: "distance to assigned hospital (km)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("neighborhoods", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	renderChart(w, bar)
}
