// Command runsim runs a single simulation against the computation service
// and prints the per-hospital summary and KPIs.
//
// Usage:
//
//	go run ./cmd/tools/runsim [flags]
//
// Flags:
//
//	-api-base  Computation service base URL (default: http://localhost:8000)
//	-m         Grid side length in km (default: 20)
//	-n         Neighborhood count (default: 80)
//	-k         Hospital count (default: 4)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/gridcare-data/coverage.report/internal/config"
	"github.com/gridcare-data/coverage.report/internal/simapi"
	"github.com/gridcare-data/coverage.report/internal/view"
)

func main() {
	apiBase := flag.String("api-base", config.DefaultComputeBaseURL, "Computation service base URL")
	m := flag.Int("m", 20, "Grid side length in km")
	n := flag.Int("n", 80, "Neighborhood count")
	k := flag.Int("k", 4, "Hospital count")
	timeout := flag.Duration("timeout", 30*time.Second, "Request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := simapi.NewClient(*apiBase, nil)
	resp, err := client.Run(ctx, simapi.SimulationParams{M: *m, N: *n, K: *k})
	if err != nil {
		log.Fatalf("simulation failed: %v", err)
	}

	enriched, err := view.Enrich(resp)
	if err != nil {
		log.Fatalf("inconsistent result: %v", err)
	}
	summaries := view.Summarize(enriched)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HOSPITAL\tX\tY\tNEIGHBORHOODS\tAVG DISTANCE")
	for _, s := range summaries {
		fmt.Fprintf(tw, "H%d\t%.2f\t%.2f\t%d\t%s\n",
			s.HospitalID, s.Hospital.X, s.Hospital.Y, s.Count, view.FormatKm(s.AverageDistance))
	}
	tw.Flush()

	fmt.Println()
	for _, card := range view.KPICards(resp) {
		fmt.Printf("%-16s %-12s %s\n", card.Title, card.Value, card.Caption)
	}
}
