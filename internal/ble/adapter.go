// Package ble adapts tinygo.org/x/bluetooth to the transport and directory
// contracts the session consumes. It is the only package that touches a real
// radio.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tinygo.org/x/bluetooth"

	"lotuslamp/internal/config"
	"lotuslamp/internal/discovery"
)

// Adapter wraps the platform BLE stack. It implements both lamp.Transport
// and lamp.Directory.
type Adapter struct {
	adapter *bluetooth.Adapter
	log     *slog.Logger

	mu        sync.Mutex
	known     map[string]bluetooth.Address
	device    bluetooth.Device
	connected bool
	chars     map[string]bluetooth.DeviceCharacteristic
}

// New enables the default platform adapter.
func New(logger *slog.Logger) (*Adapter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("enable bluetooth adapter: %w", err)
	}
	return &Adapter{
		adapter: adapter,
		log:     logger.With("component", "ble"),
		known:   map[string]bluetooth.Address{},
		chars:   map[string]bluetooth.DeviceCharacteristic{},
	}, nil
}

// Scan collects advertising peers until the timeout elapses or ctx is
// cancelled. Peers are appended as discovered and deduplicated by address.
//
// The platform advertisement payload only supports membership tests, so the
// peer's service list is populated with the standard lamp service when the
// advertisement carries it, rather than the full advertised set.
func (a *Adapter) Scan(ctx context.Context, timeout time.Duration) ([]discovery.Peer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lampService, err := bluetooth.ParseUUID(strings.ToLower(config.DefaultServiceUUID))
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		peers []discovery.Peer
		index = map[string]int{}
	)

	done := make(chan struct{})
	go scanWatchdog(ctx, timeout, done, func() {
		if err := a.adapter.StopScan(); err != nil {
			a.log.Debug("stop scan", "error", err)
		}
	})
	defer close(done)

	err = a.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
		addr := result.Address.String()

		a.mu.Lock()
		a.known[addr] = result.Address
		a.mu.Unlock()

		var services []string
		if result.AdvertisementPayload != nil && result.HasServiceUUID(lampService) {
			services = []string{config.DefaultServiceUUID}
		}

		mu.Lock()
		defer mu.Unlock()
		if i, ok := index[addr]; ok {
			// Later advertisements may carry the name the first one lacked.
			if peers[i].Name == "" {
				peers[i].Name = result.LocalName()
			}
			peers[i].RSSI = result.RSSI
			return
		}
		index[addr] = len(peers)
		peers = append(peers, discovery.Peer{
			Name:     result.LocalName(),
			Address:  addr,
			RSSI:     result.RSSI,
			Services: services,
		})
	})
	if err != nil {
		return peers, fmt.Errorf("scan: %w", err)
	}
	return peers, nil
}

// scanWatchdog stops the radio once ctx is cancelled or the timeout elapses.
// The deadline can fire before the scan has actually started, and a stop
// issued then is lost, so stop is retried until done closes.
func scanWatchdog(ctx context.Context, timeout time.Duration, done <-chan struct{}, stop func()) {
	select {
	case <-ctx.Done():
	case <-time.After(timeout):
	case <-done:
		return
	}
	for {
		stop()
		select {
		case <-done:
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// Connect opens a connection to the peer with the given address. The
// platform address handle comes from a previous scan; if the address was
// never seen, a short scan runs to find it first.
func (a *Adapter) Connect(ctx context.Context, address string) (bool, error) {
	addr, ok := a.lookup(address)
	if !ok {
		if _, err := a.Scan(ctx, 5*time.Second); err != nil {
			return false, err
		}
		if addr, ok = a.lookup(address); !ok {
			return false, nil
		}
	}

	device, err := a.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return false, fmt.Errorf("connect %s: %w", address, err)
	}

	a.mu.Lock()
	a.device = device
	a.connected = true
	a.chars = map[string]bluetooth.DeviceCharacteristic{}
	a.mu.Unlock()

	a.log.Debug("connected", "address", address)
	return true, nil
}

func (a *Adapter) lookup(address string) (bluetooth.Address, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for seen, addr := range a.known {
		if strings.EqualFold(seen, address) {
			return addr, true
		}
	}
	return bluetooth.Address{}, false
}

// Write sends payload to the named characteristic without response.
func (a *Adapter) Write(_ context.Context, charUUID string, payload []byte) error {
	a.mu.Lock()
	connected := a.connected
	a.mu.Unlock()
	if !connected {
		return errors.New("ble: not connected")
	}

	char, err := a.characteristic(charUUID)
	if err != nil {
		return err
	}
	if _, err := char.WriteWithoutResponse(payload); err != nil {
		return fmt.Errorf("write %s: %w", charUUID, err)
	}
	return nil
}

// characteristic resolves and caches a characteristic handle by UUID.
func (a *Adapter) characteristic(charUUID string) (bluetooth.DeviceCharacteristic, error) {
	a.mu.Lock()
	if char, ok := a.chars[strings.ToUpper(charUUID)]; ok {
		a.mu.Unlock()
		return char, nil
	}
	device := a.device
	a.mu.Unlock()

	services, err := device.DiscoverServices(nil)
	if err != nil {
		return bluetooth.DeviceCharacteristic{}, fmt.Errorf("discover services: %w", err)
	}
	for _, svc := range services {
		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			continue
		}
		for _, char := range chars {
			if strings.EqualFold(char.UUID().String(), charUUID) {
				a.mu.Lock()
				a.chars[strings.ToUpper(charUUID)] = char
				a.mu.Unlock()
				return char, nil
			}
		}
	}
	return bluetooth.DeviceCharacteristic{}, fmt.Errorf("characteristic %s not found on device", charUUID)
}

func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}

// Disconnect drops the connection. Safe to call repeatedly.
func (a *Adapter) Disconnect() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.connected {
		return nil
	}
	a.connected = false
	a.chars = map[string]bluetooth.DeviceCharacteristic{}
	return a.device.Disconnect()
}

// Structure connects to a peer (if not already connected to it) and
// enumerates its full GATT layout.
//
// The platform stack does not expose characteristic capability flags, so
// Properties is left empty in live enumerations; identifier suggestions for
// live structures therefore come from the exact-match tier only.
func (a *Adapter) Structure(ctx context.Context, address string, timeout time.Duration) (*discovery.Structure, error) {
	opened := false
	if !a.Connected() {
		ok, err := a.Connect(ctx, address)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		opened = true
	}
	if opened {
		defer func() { _ = a.Disconnect() }()
	}

	a.mu.Lock()
	device := a.device
	a.mu.Unlock()

	services, err := device.DiscoverServices(nil)
	if err != nil {
		return nil, fmt.Errorf("discover services: %w", err)
	}

	structure := &discovery.Structure{Address: address}
	for _, svc := range services {
		uuid := strings.ToUpper(svc.UUID().String())
		s := discovery.Service{
			UUID:        uuid,
			Description: discovery.DescribeService(uuid),
		}
		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			a.log.Debug("discover characteristics", "service", uuid, "error", err)
		}
		for _, char := range chars {
			s.Characteristics = append(s.Characteristics, discovery.Characteristic{
				UUID: strings.ToUpper(char.UUID().String()),
			})
		}
		structure.Services = append(structure.Services, s)
	}
	return structure, nil
}
