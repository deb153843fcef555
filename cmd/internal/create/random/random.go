package random

import (
	"fmt"

	"github.com/nathanhack/sysldpc/cmd/internal/create"
	"github.com/nathanhack/sysldpc/linearblock/ldpc/regular"
	"github.com/spf13/cobra"
)

var (
	Message uint
	Column  uint
	Row     uint
	Seed    int64
	Verbose bool
)

var RandomRun = func(cmd *cobra.Command, args []string) {
	_, cancel := create.Setup(Verbose)
	defer cancel()

	H, err := regular.New(int(Message), int(Column), int(Row), create.Rand(Seed))
	if err != nil {
		fmt.Println("Unable to create random LDPC: ", err)
		return
	}

	if err := create.WriteH(args[0], H); err != nil {
		fmt.Println(err)
	}
}
