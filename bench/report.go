package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}

// WriteText writes a human-readable report: header, results table and a short
// automatic analysis.
func (r *Report) WriteText(w io.Writer) error {
	rule := strings.Repeat("=", 88)
	sub := strings.Repeat("-", 88)

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "RESOURCE-CONSTRAINED SHORTEST PATH: SIMULATED ANNEALING BENCHMARK")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "run      %s\n", r.ID)
	fmt.Fprintf(&b, "created  %s\n", r.Created.Format(time.RFC3339))
	fmt.Fprintf(&b, "system   %s | %s | %d cores | %s | %s\n",
		r.System.Platform, r.System.CPU, r.System.Cores, r.System.RAM, r.System.Go)
	fmt.Fprintf(&b, "runs     %d per instance, base seed %d\n\n", r.Runs, r.Seed)

	fmt.Fprintln(&b, "RESULTS")
	fmt.Fprintln(&b, sub)
	fmt.Fprintln(&b, "Initial: cost of the random starting path. Best: cost after annealing.")
	fmt.Fprintln(&b, "Gap(init): cost reduction vs initial. Gap(LB): distance to the unconstrained lower bound.")
	fmt.Fprintln(&b)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(tw, "Instance\tNodes\tEdges\tR\tInitial\tBest\tResource\tMean±SD\tGap(init)\tGap(LB)\tms\tStatus\t")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f±%.2f\t%.2f%%\t%.2f%%\t%.1f\t%s\t\n",
			row.Instance, row.Nodes, row.Edges, row.Budget,
			row.InitialCost, row.BestCost, row.BestResource,
			row.MeanCost, row.StdDevCost,
			row.GapInitial, row.GapLowerBound, row.ElapsedMS, row.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	b.Reset()
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "ANALYSIS")
	fmt.Fprintln(&b, sub)
	for _, line := range r.Analysis() {
		fmt.Fprintln(&b, line)
	}
	_, err := io.WriteString(w, b.String())

	return err
}

// Analysis summarises the report in a few sentences.
func (r *Report) Analysis() []string {
	if len(r.Rows) == 0 {
		return []string{"No instances were processed."}
	}

	var feasible, optimal, improved, noPath int
	for _, row := range r.Rows {
		switch row.Status {
		case StatusOptimal:
			optimal++
			feasible++
		case StatusFeasible:
			feasible++
		case StatusNoPath:
			noPath++
		}
		if row.GapInitial > 0 {
			improved++
		}
	}
	largest := r.Rows[0]
	for _, row := range r.Rows[1:] {
		if row.Nodes > largest.Nodes {
			largest = row
		}
	}

	lines := []string{
		fmt.Sprintf("Processed %d instances; %d within budget, %d matching the lower bound.",
			len(r.Rows), feasible, optimal),
		fmt.Sprintf("Annealing improved on the initial random path in %d of %d instances.", improved, len(r.Rows)),
	}
	if noPath > 0 {
		lines = append(lines, fmt.Sprintf("No path to the target was found in %d reachable instances.", noPath))
	}

	return append(lines, fmt.Sprintf("Largest instance (%s, %d nodes) took %.1f ms per run on average.",
		largest.Instance, largest.Nodes, largest.ElapsedMS))
}
