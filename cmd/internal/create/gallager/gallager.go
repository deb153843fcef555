package gallager

import (
	"fmt"

	"github.com/nathanhack/sysldpc/cmd/internal/create"
	"github.com/nathanhack/sysldpc/linearblock/ldpc/gallager"
	"github.com/spf13/cobra"
)

var Parity uint
var Wc uint
var Wr uint
var Smallest uint
var Iter uint
var Threads uint
var Seed int64
var Verbose bool

var GallagerRun = func(cmd *cobra.Command, args []string) {
	ctx, cancel := create.Setup(Verbose)
	defer cancel()

	H, err := gallager.Search(ctx, create.Rand(Seed), int(Parity), int(Wc), int(Wr), int(Smallest), int(Iter), int(Threads))
	if err != nil {
		fmt.Println("Unable to create gallager LDPC: ", err)
		return
	}

	if H == nil {
		fmt.Println("Unable to create gallager LDPC try again")
		return
	}

	if err := create.WriteH(args[0], H); err != nil {
		fmt.Println(err)
	}
}
