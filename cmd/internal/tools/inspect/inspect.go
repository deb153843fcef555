package inspect

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/nathanhack/sysldpc/cmd/internal/tools"
	"github.com/spf13/cobra"
)

var Threads uint

var InspectRun = func(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("requires at least one RECORD")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, file := range args {
		record, err := tools.LoadRecord(file)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(tools.Summarize(ctx, file, record, int(Threads)))
	}
}
