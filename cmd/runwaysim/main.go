// Command runwaysim runs the single-runway admission simulation described
// by an input descriptor file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bfunes/runwaysim/internal/clock"
	"github.com/bfunes/runwaysim/internal/config"
	"github.com/bfunes/runwaysim/internal/obslog"
	"github.com/bfunes/runwaysim/internal/randgen"
	"github.com/bfunes/runwaysim/internal/sim"
	"github.com/bfunes/runwaysim/internal/tuning"
)

// Exit codes: 0 success, 22 (EINVAL) bad invocation, 1 every other
// failure.
const (
	exitOK            = 0
	exitBadInvocation = 22
	exitFailure       = 1
)

var (
	configPath string
	seed       uint64
	logLevel   string
	logDir     string
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)

	// cobra's default behavior on a bad argument count both prints usage
	// and returns cobra's own generic error; intercept it here so the
	// process still exits 22, not cobra's default.
	root.SilenceErrors = true
	root.SilenceUsage = true

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	if errors.Is(err, sim.ErrBadInvocation) {
		fmt.Fprintln(os.Stderr, err)
		return exitBadInvocation
	}
	fmt.Fprintln(os.Stderr, err)
	return exitFailure
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runwaysim <input-file>",
		Short: "Simulate a single-runway admission controller",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one input file argument, got %d", sim.ErrBadInvocation, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(args[0])
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML tuning override file")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the fuel-reserve PRNG (0 = seed from wall clock)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "structured log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for rotating structured log files (empty = stderr)")
	return cmd
}

func runSimulation(inputPath string) error {
	tn, err := config.Load(configPath, tuning.Default())
	if err != nil {
		return err
	}

	logger := obslog.New(logLevel, logDir)
	defer logger.Close()
	narrator := obslog.NewNarrator(os.Stdout)

	rng := randgen.New()
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng.Seed(seed)
	logger.Info("starting simulation", "seed", seed, "input", inputPath)

	driver := &sim.Driver{
		Tuning:   tn,
		Clock:    clock.Real{},
		Rand:     rng,
		Narrator: narrator,
		Logger:   logger,
	}
	return driver.Run(context.Background(), inputPath)
}
