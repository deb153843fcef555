package create

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nathanhack/sysldpc/bipartite"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
)

// Setup sets the log level and returns a context cancelled by SIGINT or SIGTERM.
func Setup(verbose bool) (context.Context, context.CancelFunc) {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Rand returns a source seeded with seed, or with the clock when seed is 0.
func Rand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logrus.Debugf("Using seed %v", seed)
	return rand.New(rand.NewSource(seed))
}

// WriteH writes the text description of H to path.
func WriteH(path string, H mat.SparseMat) error {
	buf := bytes.Buffer{}
	if err := bipartite.Write(&buf, H); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write file: %w", err)
	}
	p, n := H.Dims()
	logrus.Infof("Saved %v parities over %v symbols to %v", p, n, path)
	return nil
}
