package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/futuroptimist/strider/internal/analysis"
	"github.com/futuroptimist/strider/internal/walker"
)

// PlotSeries renders one named trace from a finished run as an ASCII chart.
func PlotSeries(name string, frames []walker.Frame, plotWidth, plotHeight int) (string, error) {
	series := analysis.TraceByName(name, frames)
	if series == nil {
		return "", fmt.Errorf("unknown series %q (available: %s)",
			name, strings.Join(analysis.TraceNames(), ", "))
	}
	if len(series) < 2 {
		return "", fmt.Errorf("series %q has too few samples", name)
	}
	return asciigraph.Plot(series,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption(name),
	), nil
}

// PlotRun renders the standard post-run summary: foot offsets over terrain,
// then blend weights.
func PlotRun(result *walker.Result, plotWidth, plotHeight int) string {
	var b strings.Builder

	offsets := [][]float64{
		analysis.TraceLeftOffset(result.Frames),
		analysis.TraceRightOffset(result.Frames),
	}
	b.WriteString(asciigraph.PlotMany(offsets,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("foot offsets (left, right)"),
	))
	b.WriteString("\n\n")

	weights := [][]float64{
		analysis.TraceIdleWeight(result.Frames),
		analysis.TraceWalkWeight(result.Frames),
		analysis.TraceRunWeight(result.Frames),
	}
	b.WriteString(asciigraph.PlotMany(weights,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("blend weights (idle, walk, run)"),
	))
	b.WriteString("\n")

	return b.String()
}

// GaitSummary formats a gait report as aligned text.
func GaitSummary(report analysis.GaitReport) string {
	var b strings.Builder
	b.WriteString("GAIT\n")
	for _, stats := range []analysis.StrideStats{report.Left, report.Right} {
		b.WriteString(fmt.Sprintf("  %-6s contacts=%-4d mean=%.3fs stddev=%.3fs min=%.3fs max=%.3fs\n",
			stats.Foot, stats.Count, stats.Mean, stats.StdDev, stats.Min, stats.Max))
	}
	b.WriteString(fmt.Sprintf("  symmetry %.2f\n", report.Symmetry))
	return b.String()
}
