package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/nathanhack/sysldpc/cmd/internal/tools"
	"github.com/nathanhack/sysldpc/persistence"
	"github.com/spf13/cobra"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var OutputFile string
var Parities bool

var ChartRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RECORD")
		return
	}

	records := make([]*persistence.Record, len(args))
	var err error
	for i, file := range args {
		records[i], err = tools.LoadRecord(file)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	if err := Render(f, args, records, Parities); err != nil {
		fmt.Println(err)
	}
}

// Render writes a bar chart with the degree distribution of every record.
// Symbol degrees are charted unless parities is set.
func Render(w io.Writer, names []string, records []*persistence.Record, parities bool) error {
	histograms := make([][]int, len(records))
	width := 0
	for i, r := range records {
		inc := r.Incidence()
		degrees := inc.SymbolDegrees()
		if parities {
			degrees = inc.ParityDegrees()
		}
		histograms[i] = tools.Histogram(degrees)
		if len(histograms[i]) > width {
			width = len(histograms[i])
		}
	}

	xnames := make([]string, width)
	for d := range xnames {
		xnames[d] = fmt.Sprint(d)
	}

	subtitle := "Symbol Degrees"
	if parities {
		subtitle = "Parity Degrees"
	}

	// create a new bar instance
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Codes",
			Subtitle: subtitle,
			Left:     "20%",
		}),
		charts.WithLegendOpts(opts.Legend{Show: true,
			Orient: "vertical",
			Right:  "0",
			Top:    "top",
			Type:   "scroll",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "Degree",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "Count",
			SplitLine: &opts.SplitLine{Show: true},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)

	bar.SetXAxis(xnames)
	for i, h := range histograms {
		bar.AddSeries(names[i], series(h, width))
	}
	return bar.Render(w)
}

func series(histogram []int, width int) []opts.BarData {
	results := make([]opts.BarData, width)
	for d := range results {
		if d < len(histogram) {
			results[d] = opts.BarData{Value: histogram[d]}
		} else {
			results[d] = opts.BarData{Value: 0}
		}
	}
	return results
}
