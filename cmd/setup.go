package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lotuslamp/internal/ble"
	"lotuslamp/internal/config"
	"lotuslamp/internal/discovery"
)

var (
	flagSetupAddress string
	flagSetupName    string
	flagSetupOutput  string
	flagSetupService string
	flagSetupWrite   string
	flagSetupNotify  string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Find a lamp and save its configuration",
	Long: `Interactive setup wizard: scans for nearby lamps, inspects the one you
pick, and saves a config the other commands can use.

Pass --address to skip the scan and configure a known peripheral directly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger()

		store, err := openStore(log)
		if err != nil {
			return err
		}

		adapter, err := ble.New(log)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		in := bufio.NewReader(os.Stdin)

		address := flagSetupAddress
		name := flagSetupName
		if address == "" {
			fmt.Fprintf(os.Stderr, "Scanning for %s...\n", flagTimeout)
			peers, err := adapter.Scan(ctx, flagTimeout)
			if err != nil {
				return err
			}
			lamps := discovery.FilterLikelyLamps(peers)
			if len(lamps) == 0 {
				return fmt.Errorf("no lamps found; make sure the lamp is powered on, or pass --address")
			}

			printPeerTable(lamps)
			pick, err := promptIndex(in, len(lamps))
			if err != nil {
				return err
			}
			address = lamps[pick].Address
			if name == "" {
				name = lamps[pick].Name
			}
		}
		if name == "" {
			name = prompt(in, "Device name", "Lotus Lamp")
		}

		device := config.NewDevice(name)
		device.Address = strings.ToUpper(address)

		fmt.Fprintf(os.Stderr, "Inspecting %s...\n", address)
		structure, err := adapter.Structure(ctx, address, flagTimeout)
		if err != nil {
			return err
		}
		if structure == nil {
			return fmt.Errorf("peripheral %s not found", address)
		}

		if sug := discovery.IdentifyProtocolIDs(structure); sug != nil {
			fmt.Printf("Recognized protocol identifiers (%s confidence)\n", sug.Confidence)
			device.ServiceUUID = sug.ServiceUUID
			device.WriteCharUUID = sug.WriteCharUUID
			device.NotifyCharUUID = sug.NotifyCharUUID
		} else {
			fmt.Println("Protocol identifiers not recognized; keeping the standard defaults.")
			fmt.Println("If the lamp does not respond, run: lotuslamp inspect", address)
		}

		if err := applyIdentifierFlags(&device); err != nil {
			return err
		}

		store.Add(device)

		out := flagSetupOutput
		if out == "" {
			out = store.Path()
		}
		if out == "" {
			out = config.DefaultLocations()[0]
		}
		if err := store.Save(out); err != nil {
			return err
		}

		fmt.Printf("Saved %q (%s) to %s\n", device.Name, device.Address, out)
		fmt.Println("Try it: lotuslamp color red")
		return nil
	},
}

// applyIdentifierFlags overrides the detected protocol identifiers with
// whatever the user supplied, canonicalized to the config file's uppercase
// dashed form.
func applyIdentifierFlags(device *config.Device) error {
	overrides := []struct {
		flag  string
		value string
		dst   *string
	}{
		{"service", flagSetupService, &device.ServiceUUID},
		{"write-char", flagSetupWrite, &device.WriteCharUUID},
		{"notify-char", flagSetupNotify, &device.NotifyCharUUID},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		canonical, err := config.NormalizeUUID(o.value)
		if err != nil {
			return fmt.Errorf("--%s: %w", o.flag, err)
		}
		*o.dst = canonical
	}
	return nil
}

// promptIndex asks for a 1-based row number from the scan table.
func promptIndex(in *bufio.Reader, n int) (int, error) {
	for {
		answer := prompt(in, fmt.Sprintf("Pick a lamp [1-%d]", n), "1")
		i, err := strconv.Atoi(answer)
		if err == nil && i >= 1 && i <= n {
			return i - 1, nil
		}
		fmt.Fprintf(os.Stderr, "Not a row number: %q\n", answer)
	}
}

func prompt(in *bufio.Reader, label, fallback string) string {
	fmt.Fprintf(os.Stderr, "%s [%s]: ", label, fallback)
	line, err := in.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}

func init() {
	setupCmd.Flags().StringVar(&flagSetupAddress, "address", "", "Configure this address directly, skipping the scan")
	setupCmd.Flags().StringVar(&flagSetupName, "name", "", "Device name to save (default: advertised name)")
	setupCmd.Flags().StringVarP(&flagSetupOutput, "output", "o", "", "Where to write the config (default: loaded path or ./lotus_lamp_config.json)")
	setupCmd.Flags().StringVar(&flagSetupService, "service", "", "Override the control service UUID")
	setupCmd.Flags().StringVar(&flagSetupWrite, "write-char", "", "Override the write characteristic UUID")
	setupCmd.Flags().StringVar(&flagSetupNotify, "notify-char", "", "Override the notify characteristic UUID")
	rootCmd.AddCommand(setupCmd)
}
