package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lotuslamp/internal/bridge"
	"lotuslamp/internal/lamp"
)

var (
	flagBroker string
	flagPrefix string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Expose the lamp over MQTT",
	Long: `Connect to the lamp and an MQTT broker, then apply every message under
<prefix>/set/# to the lamp. The default prefix is lotus/<device name>.

Commands:

  <prefix>/set/power       on | off
  <prefix>/set/color       R,G,B or a color name
  <prefix>/set/brightness  0-100
  <prefix>/set/speed       0-100
  <prefix>/set/mode        mode number or a name to search for`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			prefix := flagPrefix
			if prefix == "" {
				prefix = "lotus/" + s.Device().Name
			}
			prefix = strings.TrimRight(prefix, "/")

			b := bridge.New(s, prefix, logger())
			fmt.Fprintf(os.Stderr, "Bridging %q on %s under %s/set/#\n", s.Device().Name, flagBroker, prefix)
			return b.Run(ctx, flagBroker)
		})
	},
}

func init() {
	bridgeCmd.Flags().StringVar(&flagBroker, "broker", "mqtt://localhost:1883", "MQTT broker URL")
	bridgeCmd.Flags().StringVar(&flagPrefix, "prefix", "", "Topic prefix (default: lotus/<device name>)")
	rootCmd.AddCommand(bridgeCmd)
}
