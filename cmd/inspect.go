package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lotuslamp/internal/ble"
	"lotuslamp/internal/discovery"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect ADDRESS",
	Short: "Dump a peripheral's GATT layout",
	Long: `Connect to a peripheral, enumerate its services and characteristics, and
print the protocol identifiers it appears to use. Handy when a lamp does not
use the standard identifiers and setup cannot recognize it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger()

		adapter, err := ble.New(log)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		fmt.Fprintf(os.Stderr, "Connecting to %s...\n", args[0])
		structure, err := adapter.Structure(ctx, args[0], flagTimeout)
		if err != nil {
			return err
		}
		if structure == nil {
			return fmt.Errorf("peripheral %s not found; run a scan first to make sure it is advertising", args[0])
		}

		printStructure(structure)

		if sug := discovery.IdentifyProtocolIDs(structure); sug != nil {
			fmt.Printf("\nSuggested identifiers (%s confidence):\n", sug.Confidence)
			fmt.Printf("  service:  %s\n", sug.ServiceUUID)
			fmt.Printf("  write:    %s\n", sug.WriteCharUUID)
			fmt.Printf("  notify:   %s\n", sug.NotifyCharUUID)
		} else {
			fmt.Println("\nNo protocol identifiers recognized on this peripheral.")
		}
		return nil
	},
}

func printStructure(s *discovery.Structure) {
	fmt.Printf("Peripheral %s\n", s.Address)
	for _, svc := range s.Services {
		desc := svc.Description
		if desc == "" {
			desc = "unknown"
		}
		fmt.Printf("  Service %s (%s)\n", svc.UUID, desc)
		for _, char := range svc.Characteristics {
			line := fmt.Sprintf("    Characteristic %s", char.UUID)
			if d := discovery.DescribeCharacteristic(char.UUID); d != "" {
				line += fmt.Sprintf(" (%s)", d)
			}
			if len(char.Properties) > 0 {
				line += " [" + strings.Join(char.Properties, ", ") + "]"
			}
			fmt.Println(line)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
