package systematic

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nathanhack/sysldpc/bipartite"
	"github.com/nathanhack/sysldpc/cmd/internal/config"
	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/nathanhack/sysldpc/persistence"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var ConfigFile string

var SystematicRun = func(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(ConfigFile, cmd.Flags())
	if err != nil {
		logrus.Fatalf("Unable to load config: %v", err)
	}
	cfg.Inputs = append(cfg.Inputs, args...)

	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	if len(cfg.Inputs) == 0 {
		logrus.Fatalf("No inputs given; pass INPUT files or set inputs in the config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := Run(ctx, cfg)
	if errors.Is(err, linearblock.ErrVerification) {
		logrus.Fatalf("Verification failed: %v", err)
	}
	if err != nil {
		fmt.Println("Unable to process inputs: ", err)
		os.Exit(1)
	}
	for _, r := range results {
		logrus.Infof("%v: k=%v p=%v repaired=%v saved %v", r.Input, r.Record.Message, r.Record.Parity, r.Record.Repaired, r.Paths.Record)
	}
}

// Result is the outcome of one input file.
type Result struct {
	Input  string
	Seed   int64
	Record *persistence.Record
	Paths  persistence.Paths
}

// Run processes every input of cfg, at most cfg.Parallel at a time. Results
// keep the order of the inputs.
func Run(ctx context.Context, cfg *config.Config) ([]Result, error) {
	base := cfg.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	results := make([]Result, len(cfg.Inputs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Parallel)
	for i, input := range cfg.Inputs {
		i, input := i, input
		group.Go(func() error {
			result, err := Process(ctx, cfg, input, base+int64(i))
			if err != nil {
				return fmt.Errorf("%v: %w", input, err)
			}
			results[i] = *result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Process parses one input, solves it with the given seed and saves the code.
func Process(ctx context.Context, cfg *config.Config, input string, seed int64) (*Result, error) {
	ratio, err := bipartite.ParseRatio(cfg.Ratio)
	if err != nil {
		return nil, err
	}
	format, err := persistence.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	H, err := bipartite.ReadFile(input, ratio, cfg.Codeword)
	if err != nil {
		return nil, err
	}
	p, n := H.Dims()
	logrus.Debugf("%v: read %v parities over %v symbols", input, p, n)

	opts := linearblock.Options{
		RepairWeight:    cfg.Weight,
		Check:           cfg.Check,
		Rand:            rand.New(rand.NewSource(seed)),
		Threads:         cfg.Threads,
		ShowProgressBar: cfg.Verbose && cfg.Parallel == 1,
	}
	code, err := linearblock.NewSystematic(ctx, H, opts)
	if err != nil {
		return nil, err
	}

	record := persistence.NewRecord(code)
	paths, err := persistence.Save(cfg.Output, record, format)
	if err != nil {
		return nil, err
	}
	return &Result{
		Input:  input,
		Seed:   seed,
		Record: record,
		Paths:  paths,
	}, nil
}
