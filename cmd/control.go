package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lotuslamp/internal/lamp"
	"lotuslamp/internal/modes"
	"lotuslamp/internal/protocol"
)

var colorCmd = &cobra.Command{
	Use:   "color (R G B | NAME)",
	Short: "Set a static color by RGB channels or by name",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if len(args) == 1 {
				if err := s.SetNamedColor(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Color set to %s\n", strings.ToLower(args[0]))
				return nil
			}
			if len(args) != 3 {
				return fmt.Errorf("want a color name or three channel values")
			}
			channels := [3]int{}
			for i, arg := range args {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("channel %q is not a number", arg)
				}
				channels[i] = n
			}
			if err := s.SetRGB(ctx, channels[0], channels[1], channels[2]); err != nil {
				return err
			}
			fmt.Printf("Color set to RGB(%d, %d, %d)\n", channels[0], channels[1], channels[2])
			return nil
		})
	},
}

var powerCmd = &cobra.Command{
	Use:       "power (on|off)",
	Short:     "Turn the lamp on or off",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			switch args[0] {
			case "on":
				if err := s.PowerOn(ctx); err != nil {
					return err
				}
				fmt.Println("Power on")
			case "off":
				if err := s.PowerOff(ctx); err != nil {
					return err
				}
				fmt.Println("Power off")
			default:
				return fmt.Errorf("want on or off, got %q", args[0])
			}
			return nil
		})
	},
}

var brightnessCmd = &cobra.Command{
	Use:   "brightness LEVEL",
	Short: "Set brightness (0-100)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("level %q is not a number", args[0])
		}
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if err := s.SetBrightness(ctx, level); err != nil {
				return err
			}
			fmt.Printf("Brightness %d%%\n", level)
			return nil
		})
	},
}

var speedCmd = &cobra.Command{
	Use:   "speed LEVEL",
	Short: "Set animation speed (0-100, animations only)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("level %q is not a number", args[0])
		}
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if err := s.SetSpeed(ctx, level); err != nil {
				return err
			}
			fmt.Printf("Speed %d%%\n", level)
			return nil
		})
	},
}

var modeCmd = &cobra.Command{
	Use:   "mode (NUMBER | QUERY)",
	Short: "Set an animation mode by number, or search by name and use the first match",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := strings.Join(args, " ")

		mode, err := strconv.Atoi(input)
		if err != nil {
			results := modes.Search(input)
			if len(results) == 0 {
				return fmt.Errorf("no mode matching %q", input)
			}
			mode = results[0].Mode
		}

		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if err := s.SetAnimation(ctx, mode); err != nil {
				return err
			}
			fmt.Printf("Mode %d: %s\n", mode, modes.Name(mode))
			return nil
		})
	},
}

var rainbowCmd = &cobra.Command{
	Use:   "rainbow",
	Short: "Sweep through the hue circle once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, _ := cmd.Flags().GetDuration("duration")
		steps, _ := cmd.Flags().GetInt("steps")
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			return s.Rainbow(ctx, duration, steps)
		})
	},
}

var pulseCmd = &cobra.Command{
	Use:   "pulse R G B",
	Short: "Pulse a color on and off",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		channels := [3]int{}
		for i, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("channel %q is not a number", arg)
			}
			channels[i] = n
		}
		times, _ := cmd.Flags().GetInt("times")
		period, _ := cmd.Flags().GetDuration("period")
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			return s.Pulse(ctx, channels[0], channels[1], channels[2], times, period)
		})
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the named colors",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range protocol.ColorNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	rainbowCmd.Flags().Duration("duration", 5*time.Second, "Total sweep duration")
	rainbowCmd.Flags().Int("steps", 30, "Number of hue steps")
	pulseCmd.Flags().Int("times", 3, "Number of pulses")
	pulseCmd.Flags().Duration("period", time.Second, "Duration of one pulse")

	rootCmd.AddCommand(colorCmd, powerCmd, brightnessCmd, speedCmd, modeCmd, rainbowCmd, pulseCmd, colorsCmd)
}
