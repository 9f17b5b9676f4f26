package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lotuslamp/internal/ble"
	"lotuslamp/internal/discovery"
)

var flagScanAll bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for nearby lamps",
	Long: `Scan for nearby BLE peripherals and list the ones that look like a lamp.

Pass --all to list every peripheral instead of only the likely lamps.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger()

		adapter, err := ble.New(log)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		fmt.Fprintf(os.Stderr, "Scanning for %s...\n", flagTimeout)
		peers, err := adapter.Scan(ctx, flagTimeout)
		if err != nil {
			return err
		}

		if !flagScanAll {
			peers = discovery.FilterLikelyLamps(peers)
		}
		if len(peers) == 0 {
			fmt.Println("No lamps found. Make sure the lamp is powered on, or retry with --all.")
			return nil
		}

		printPeerTable(peers)
		return nil
	},
}

func printPeerTable(peers []discovery.Peer) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tADDRESS\tRSSI")
	for i, p := range peers {
		name := p.Name
		if name == "" {
			name = "(unknown)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, name, p.Address, p.RSSI)
	}
	w.Flush()
}

func init() {
	scanCmd.Flags().BoolVar(&flagScanAll, "all", false, "List every peripheral, not only likely lamps")
	rootCmd.AddCommand(scanCmd)
}
