package hamming

import (
	"fmt"

	"github.com/nathanhack/sysldpc/cmd/internal/create"
	"github.com/nathanhack/sysldpc/linearblock/hamming"
	"github.com/spf13/cobra"
)

var (
	ParityBits uint
	Verbose    bool
)

var HammingRun = func(cmd *cobra.Command, args []string) {
	_, cancel := create.Setup(Verbose)
	defer cancel()

	H, err := hamming.New(int(ParityBits))
	if err != nil {
		fmt.Println("Unable to create hamming code: ", err)
		return
	}

	if err := create.WriteH(args[0], H); err != nil {
		fmt.Println(err)
	}
}
