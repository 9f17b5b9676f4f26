// Package cmd is the lotuslamp command-line interface. All lamp logic lives
// in the internal packages; this package only parses arguments, wires up a
// session and prints results.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lotuslamp/internal/ble"
	"lotuslamp/internal/config"
	"lotuslamp/internal/lamp"
)

var (
	flagConfig  string
	flagDevice  string
	flagVerbose bool
	flagTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "lotuslamp",
	Short: "Control Lotus Lamp RGB LED strips over BLE",
	Long: `Control Lotus Lamp RGB LED strips (MELK-OA10 and similar models) over BLE.

On first use, run the setup wizard to find and configure your lamp:

  lotuslamp setup`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Path to a device config file (default: search standard locations)")
	rootCmd.PersistentFlags().StringVarP(&flagDevice, "device", "d", "", "Name of the configured device to use (default: first in config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Scan timeout")
}

func Execute() error {
	return rootCmd.Execute()
}

func logger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openStore(log *slog.Logger) (*config.Store, error) {
	if flagConfig != "" {
		return config.Open(flagConfig, log)
	}
	return config.OpenDefault(log)
}

// signalContext returns a context cancelled by Ctrl-C, so long-running
// composites stop issuing new commands.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// withSession connects to the configured lamp, runs fn, and disconnects.
func withSession(fn func(ctx context.Context, s *lamp.Session) error) error {
	log := logger()

	store, err := openStore(log)
	if err != nil {
		return err
	}

	adapter, err := ble.New(log)
	if err != nil {
		return err
	}

	opts := []lamp.Option{
		lamp.WithStore(store),
		lamp.WithLogger(log),
		lamp.WithScanTimeout(flagTimeout),
	}
	if flagDevice != "" {
		opts = append(opts, lamp.WithDeviceName(flagDevice))
	}

	session, err := lamp.New(adapter, adapter, opts...)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "Connecting to %s...\n", session.Device().Name)
	ok, err := session.Connect(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("lamp %q not found; make sure it is powered on and nearby", session.Device().Name)
	}
	defer session.Disconnect()

	return fn(ctx, session)
}
