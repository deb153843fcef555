package cmd

import (
	"fmt"
	"os"

	"github.com/nathanhack/sysldpc/cmd/internal/systematic"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sysldpc",
	Short: "Systematic LDPC codes from parity check descriptions",
	Long: `sysldpc turns a text description of parity checks (one line per parity listing
the symbols it touches) into a systematic code: an encode matrix [A, I] and the
full set of decode constraints, stored as incidence lists.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&systematic.ConfigFile, "config", "", "YAML config file (keys match the systematic flags)")
}
