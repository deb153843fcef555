package cmd

import (
	"github.com/nathanhack/sysldpc/cmd/internal/tools/chart"
	"github.com/nathanhack/sysldpc/cmd/internal/tools/csv"
	"github.com/nathanhack/sysldpc/cmd/internal/tools/inspect"

	"github.com/spf13/cobra"
)

// toolsCmd represents the tools command
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"t"},
	Short:   "Tools for stored codes",
	Long:    `Tools for the records written by the systematic command`,
}

// toolsInspectCmd represents the inspect command
var toolsInspectCmd = &cobra.Command{
	Use:     "inspect RECORD [RECORD] ...",
	Aliases: []string{"i"},
	Short:   "Prints a summary of each code",
	Long:    `Prints lengths, rate, degree statistics, girth and the connected components of each code's tanner graph`,
	Run:     inspect.InspectRun,
}

// toolsCSVCmd represents the csv command
var toolsCSVCmd = &cobra.Command{
	Use:     "csv RECORD [RECORD] ...",
	Aliases: []string{"c"},
	Short:   "Export summaries to a CSV file",
	Long:    `Export summaries to a CSV file`,
	Run:     csv.CSVRun,
}

// toolsChartCmd represents the chart command
var toolsChartCmd = &cobra.Command{
	Use:   "chart RECORD [RECORD] ...",
	Short: "Charts degree distributions",
	Long:  `Writes an HTML bar chart of the degree distribution of each code`,
	Run:   chart.ChartRun,
}

func init() {
	rootCmd.AddCommand(toolsCmd)

	toolsCmd.AddCommand(toolsInspectCmd)
	toolsInspectCmd.Flags().UintVarP(&inspect.Threads, "threads", "t", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")

	toolsCmd.AddCommand(toolsCSVCmd)
	toolsCSVCmd.Flags().StringVarP(&csv.OutputFile, "output", "o", "codes.csv", "filename of the combined csv")
	toolsCSVCmd.Flags().UintVarP(&csv.Threads, "threads", "t", 0, "number of threads to use (0 means to use the # of threads equal to the # of CPUs)")

	toolsCmd.AddCommand(toolsChartCmd)
	toolsChartCmd.Flags().StringVarP(&chart.OutputFile, "output", "o", "codes.html", "filename of the chart")
	toolsChartCmd.Flags().BoolVarP(&chart.Parities, "parities", "p", false, "chart parity degrees instead of symbol degrees")
}
