package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/nathanhack/sysldpc/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var OutputFile string
var Threads uint

var header = []string{
	"Record File", "Fingerprint", "n", "k", "p", "p_extended", "rate",
	"parity degree mean", "parity degree std", "symbol degree mean", "symbol degree std",
	"girth", "components",
}

var CSVRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RECORD")
		return
	}

	summaries := make([]tools.Summary, len(args))
	for i, file := range args {
		record, err := tools.LoadRecord(file)
		if err != nil {
			fmt.Println(err)
			return
		}
		summaries[i] = tools.Summarize(context.Background(), file, record, int(Threads))
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer f.Close()

	if err := Write(f, summaries); err != nil {
		fmt.Println(err)
	}
}

// Write writes a header and one row per summary.
func Write(out io.Writer, summaries []tools.Summary) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		record := []string{
			s.File,
			s.Fingerprint,
			fmt.Sprint(s.Codeword),
			fmt.Sprint(s.Message),
			fmt.Sprint(s.Parity),
			fmt.Sprint(s.Extended),
			fmt.Sprint(s.Rate),
			fmt.Sprint(s.ParityDegree.Mean),
			fmt.Sprint(math.Sqrt(s.ParityDegree.SampledVariance())),
			fmt.Sprint(s.SymbolDegree.Mean),
			fmt.Sprint(math.Sqrt(s.SymbolDegree.SampledVariance())),
			fmt.Sprint(s.Girth),
			fmt.Sprint(s.Components),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
