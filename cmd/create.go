package cmd

import (
	"github.com/nathanhack/sysldpc/cmd/internal/create/gallager"
	"github.com/nathanhack/sysldpc/cmd/internal/create/hamming"
	"github.com/nathanhack/sysldpc/cmd/internal/create/random"

	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"c"},
	Short:   "used to create parity check descriptions",
	Long:    `create writes parity check descriptions (one line per parity listing its symbols) that the systematic command reads.`,
}

// createldpcCmd represents the ldpc command
var createldpcCmd = &cobra.Command{
	Use:     "ldpc",
	Aliases: []string{"l"},
	Short:   "creates LDPC descriptions",
	Long:    `Creates descriptions of Low Density Parity Check (LDPC) codes`,
}

// createRandomCmd represents the random command
var createRandomCmd = &cobra.Command{
	Use:     "random OUTPUT_TXT",
	Aliases: []string{"r"},
	Short:   "Creates a random (c,d)-regular LDPC",
	Long:    `Creates a random LDPC where every symbol has c sockets and every parity d, matched by a random permutation. A symbol joined to the same parity twice drops out of it.`,
	Args:    cobra.ExactArgs(1),
	Run:     random.RandomRun,
}

// createGallagerCmd represents the gallager command
var createGallagerCmd = &cobra.Command{
	Use:     "gallager OUTPUT_TXT",
	Aliases: []string{"g"},
	Short:   "Creates a new Gallager based LDPC",
	Long:    `Creates a new Gallager based LDPC. Note a small cycle has a negative effect on the effectiveness of the LDPC.`,
	Args:    cobra.ExactArgs(1),
	Run:     gallager.GallagerRun,
}

// createHammingCmd represents the Hamming command
var createHammingCmd = &cobra.Command{
	Use:     "hamming OUTPUT_TXT",
	Aliases: []string{"h", "ham"},
	Short:   "Creates a new Hamming code",
	Long:    `Creates a new Hamming code parity check description.`,
	Args:    cobra.ExactArgs(1),
	Run:     hamming.HammingRun,
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createldpcCmd)

	createldpcCmd.AddCommand(createRandomCmd)
	createRandomCmd.Flags().UintVarP(&random.Message, "message", "m", 1024, "the number of message symbols k")
	createRandomCmd.Flags().UintVarP(&random.Column, "column", "c", 6, "the symbol degree c")
	createRandomCmd.Flags().UintVarP(&random.Row, "row", "r", 8, "the parity degree d (c < d)")
	createRandomCmd.Flags().Int64VarP(&random.Seed, "seed", "s", 0, "seed for the permutation; 0 seeds from the clock")
	createRandomCmd.Flags().BoolVarP(&random.Verbose, "verbose", "v", false, "enable verbose info")

	createldpcCmd.AddCommand(createGallagerCmd)
	createGallagerCmd.Flags().UintVarP(&gallager.Parity, "parity", "p", 999, "the number of parity checks (a multiple of column)")
	createGallagerCmd.Flags().UintVarP(&gallager.Wc, "column", "c", 3, "the column weight (number of ones in the H matrix column) (>=3)")
	createGallagerCmd.Flags().UintVarP(&gallager.Wr, "row", "r", 4, "the row weight (number of ones in the H matrix row) (column < row)")
	createGallagerCmd.Flags().UintVarP(&gallager.Smallest, "smallest", "s", 4, "the smallest allowed cycle: 4, 6, 8...")
	createGallagerCmd.Flags().UintVarP(&gallager.Iter, "iter", "i", 10000, "the number of iterations to try before terminating the search")
	createGallagerCmd.Flags().UintVarP(&gallager.Threads, "threads", "t", 0, "the number of threads to use; note 0 means use the number of cpus")
	createGallagerCmd.Flags().Int64Var(&gallager.Seed, "seed", 0, "seed for the column permutations; 0 seeds from the clock")
	createGallagerCmd.Flags().BoolVarP(&gallager.Verbose, "verbose", "v", false, "enable verbose info")

	createCmd.AddCommand(createHammingCmd)
	createHammingCmd.Flags().UintVarP(&hamming.ParityBits, "parity", "p", 4, "the parity >=3, sets codeword size (cs) == 2^parity-1 and message size == cs-parity")
	createHammingCmd.Flags().BoolVarP(&hamming.Verbose, "verbose", "v", false, "enable verbose info")
}
