package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lotuslamp/internal/lamp"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Arm or clear the lamp's on/off timers",
	Long: `Arm or clear the lamp's on/off timers.

The lamp has no real-time clock: run "lotuslamp sync-time" before arming a
timer, and again after the lamp loses power.`,
}

var timerOnCmd = &cobra.Command{
	Use:   "on HOUR MINUTE",
	Short: "Turn the lamp on at the given time (one-shot)",
	Args:  cobra.ExactArgs(2),
	RunE:  timerRunE(true),
}

var timerOffCmd = &cobra.Command{
	Use:   "off HOUR MINUTE",
	Short: "Turn the lamp off at the given time (one-shot)",
	Args:  cobra.ExactArgs(2),
	RunE:  timerRunE(false),
}

func timerRunE(on bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		hour, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("hour %q is not a number", args[0])
		}
		minute, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("minute %q is not a number", args[1])
		}
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if on {
				err = s.SetTimerOn(ctx, hour, minute)
			} else {
				err = s.SetTimerOff(ctx, hour, minute)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Timer armed: %02d:%02d\n", hour, minute)
			return nil
		})
	}
}

var timerClearCmd = &cobra.Command{
	Use:       "clear (on|off)",
	Short:     "Clear a timer slot",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			var err error
			switch args[0] {
			case "on":
				err = s.DisableTimerOn(ctx)
			case "off":
				err = s.DisableTimerOff(ctx)
			default:
				return fmt.Errorf("want on or off, got %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("Timer %s cleared\n", args[0])
			return nil
		})
	},
}

var syncTimeCmd = &cobra.Command{
	Use:   "sync-time",
	Short: "Push the current wall-clock time to the lamp",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			now := time.Now()
			if err := s.SyncTime(ctx, now); err != nil {
				return err
			}
			fmt.Printf("Time synced: %s\n", now.Format("Mon 15:04:05"))
			return nil
		})
	},
}

func init() {
	timerCmd.AddCommand(timerOnCmd, timerOffCmd, timerClearCmd)
	rootCmd.AddCommand(timerCmd, syncTimeCmd)
}
