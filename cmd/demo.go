package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lotuslamp/internal/lamp"
	"lotuslamp/internal/protocol"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a short feature tour on the lamp",
	Long: `Run a short tour of what the lamp can do: a color cycle, a brightness
sweep, a couple of animation modes, and a rainbow. Takes about half a minute.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if err := s.PowerOn(ctx); err != nil {
				return err
			}

			fmt.Println("Color cycle...")
			for _, name := range []string{"red", "green", "blue", "yellow", "cyan", "magenta", "white"} {
				if err := s.SetNamedColor(ctx, name); err != nil {
					return err
				}
				if err := pause(ctx, time.Second); err != nil {
					return err
				}
			}

			fmt.Println("Brightness sweep...")
			for _, level := range []int{10, 40, 70, 100} {
				if err := s.SetBrightness(ctx, level); err != nil {
					return err
				}
				if err := pause(ctx, 500*time.Millisecond); err != nil {
					return err
				}
			}

			fmt.Println("Animation modes...")
			for _, mode := range []int{1, 16, 143} {
				if err := s.SetAnimation(ctx, mode); err != nil {
					return err
				}
				if err := s.SetSpeed(ctx, 80); err != nil {
					return err
				}
				if err := pause(ctx, 3*time.Second); err != nil {
					return err
				}
			}

			fmt.Println("Rainbow...")
			if err := s.Rainbow(ctx, 8*time.Second, 40); err != nil {
				return err
			}

			fmt.Println("Done.")
			r, g, b, _ := protocol.NamedColor("white")
			return s.SetRGB(ctx, r, g, b)
		})
	},
}

// pause waits between demo steps, bailing out promptly on Ctrl-C.
func pause(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
