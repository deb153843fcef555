package cmd

import (
	"github.com/nathanhack/sysldpc/bipartite"
	"github.com/nathanhack/sysldpc/cmd/internal/systematic"
	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/nathanhack/sysldpc/persistence"

	"github.com/spf13/cobra"
)

// systematicCmd represents the systematic command
var systematicCmd = &cobra.Command{
	Use:     "systematic [INPUT] ...",
	Aliases: []string{"sys", "s"},
	Short:   "Creates systematic codes from parity check descriptions",
	Long: `Reads every INPUT (plus the inputs of the config) as a parity check description,
brings it into systematic form, adding repair rows where the checks are dependent,
and saves symbols_and_parities_k=<k>.<format>, k=<k>_decode.txt and k=<k>_encode.txt
into the output directory. Settings come from flags, SYSLDPC_ environment variables,
the config file and defaults, in that order.`,
	Run: systematic.SystematicRun,
}

func init() {
	rootCmd.AddCommand(systematicCmd)
	flags := systematicCmd.Flags()
	flags.String("ratio", bipartite.DefaultRatio.String(), "codeword to parity length ratio n:p as num/den")
	flags.IntP("codeword", "n", 0, "the codeword length; overrides ratio when >0")
	flags.IntP("weight", "d", linearblock.DefaultRepairWeight, "the number of ones in each repair row")
	flags.Bool("check", true, "verify the identity block of the encode matrix")
	flags.Int64P("seed", "s", 0, "seed for repair rows, input i uses seed+i; 0 seeds from the clock")
	flags.StringP("output", "o", ".", "the output directory")
	flags.StringP("format", "f", string(persistence.JSON), "record format: json or yaml")
	flags.IntP("threads", "t", 0, "the number of threads to use per input; note 0 means use the number of cpus")
	flags.IntP("parallel", "p", 1, "the number of inputs processed at the same time")
	flags.StringSlice("inputs", nil, "input files, added to the INPUT arguments")
	flags.BoolP("verbose", "v", false, "enable verbose info")
}
