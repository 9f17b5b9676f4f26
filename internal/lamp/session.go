// Package lamp drives one lamp over an abstract transport: device
// resolution, connect/send/disconnect sequencing, the mandatory settle delay
// after each write, and the color composites.
package lamp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lotuslamp/internal/config"
	"lotuslamp/internal/discovery"
	"lotuslamp/internal/protocol"
)

var (
	ErrNotConnected   = errors.New("not connected to lamp")
	ErrDeviceNotFound = errors.New("device not found")
	ErrNotConfigured  = errors.New("no lamp devices configured")
)

const (
	// DefaultDelay is the lamp's settle time after a normal command.
	DefaultDelay = 100 * time.Millisecond
	// PowerDelay is the longer settle time after power on/off.
	PowerDelay = 500 * time.Millisecond
	// DefaultScanTimeout bounds the fallback scan during Connect.
	DefaultScanTimeout = 10 * time.Second
)

// Session is a single logical session with one lamp: one connection, one
// in-flight command at a time. Sessions for different lamps are independent
// and may run concurrently; a single session must not be shared across
// goroutines.
type Session struct {
	transport Transport
	directory Directory
	cfg       config.Device
	log       *slog.Logger
	scanWait  time.Duration
}

type options struct {
	cfg        *config.Device
	store      *config.Store
	deviceName string
	logger     *slog.Logger
	scanWait   time.Duration
}

type Option func(*options)

// WithConfig selects an explicit device configuration, bypassing any store.
func WithConfig(cfg config.Device) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithStore supplies the store used to resolve the device by name or
// default.
func WithStore(s *config.Store) Option {
	return func(o *options) { o.store = s }
}

// WithDeviceName picks a named device from the store instead of its default.
func WithDeviceName(name string) Option {
	return func(o *options) { o.deviceName = name }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithScanTimeout overrides the fallback scan duration.
func WithScanTimeout(d time.Duration) Option {
	return func(o *options) { o.scanWait = d }
}

// New resolves which device to drive and wires up a session. Resolution
// order: explicit config, then named store lookup, then the store's default
// device.
func New(transport Transport, directory Directory, opts ...Option) (*Session, error) {
	o := options{scanWait: DefaultScanTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	cfg, err := resolveDevice(o)
	if err != nil {
		return nil, err
	}

	return &Session{
		transport: transport,
		directory: directory,
		cfg:       cfg,
		log:       o.logger.With("device", cfg.Name),
		scanWait:  o.scanWait,
	}, nil
}

func resolveDevice(o options) (config.Device, error) {
	if o.cfg != nil {
		cfg := *o.cfg
		if cfg.ServiceUUID == "" || cfg.WriteCharUUID == "" || cfg.NotifyCharUUID == "" {
			cfg = withDefaults(cfg)
		}
		return cfg, nil
	}

	if o.deviceName != "" {
		if o.store == nil {
			return config.Device{}, fmt.Errorf("%w: %q (no config store provided)", ErrDeviceNotFound, o.deviceName)
		}
		cfg, ok := o.store.Get(o.deviceName)
		if !ok {
			available := strings.Join(o.store.Names(), ", ")
			if available == "" {
				available = "none"
			}
			return config.Device{}, fmt.Errorf("%w: %q (available devices: %s)", ErrDeviceNotFound, o.deviceName, available)
		}
		return cfg, nil
	}

	if o.store != nil {
		if cfg, ok := o.store.Default(); ok {
			return cfg, nil
		}
	}

	return config.Device{}, fmt.Errorf("%w\n\n"+
		"Option 1: pass a device configuration directly (library use)\n"+
		"Option 2: create lotus_lamp_config.json:\n"+
		`    {"devices": [{"name": "My Lamp", "address": "XX:XX:XX:XX:XX:XX"}]}`+"\n"+
		"Option 3: run the setup wizard: lotuslamp setup", ErrNotConfigured)
}

func withDefaults(cfg config.Device) config.Device {
	d := config.NewDevice(cfg.Name)
	d.Address = cfg.Address
	if cfg.ServiceUUID != "" {
		d.ServiceUUID = cfg.ServiceUUID
	}
	if cfg.WriteCharUUID != "" {
		d.WriteCharUUID = cfg.WriteCharUUID
	}
	if cfg.NotifyCharUUID != "" {
		d.NotifyCharUUID = cfg.NotifyCharUUID
	}
	return d
}

// Device returns the resolved configuration, including any address filled in
// by a successful scan.
func (s *Session) Device() config.Device {
	return s.cfg
}

// Connect establishes the channel. A stored address is tried directly first;
// if that attempt fails the address is cleared and a scan-by-name runs
// instead, so stale addresses heal themselves. Returns false with nil error
// when the lamp simply was not found.
func (s *Session) Connect(ctx context.Context) (bool, error) {
	if s.cfg.Address != "" {
		ok, err := s.transport.Connect(ctx, s.cfg.Address)
		if ok && err == nil {
			s.log.Debug("connected to stored address", "address", s.cfg.Address)
			return true, nil
		}
		// The one transport failure handled internally: a stale stored
		// address. Clear it and re-discover.
		s.log.Warn("stored address unreachable, re-scanning", "address", s.cfg.Address, "error", err)
		s.cfg.Address = ""
	}

	peer, found, err := s.locate(ctx)
	if err != nil {
		return false, err
	}
	if !found {
		s.log.Debug("lamp not found in scan", "name", s.cfg.Name)
		return false, nil
	}

	ok, err := s.transport.Connect(ctx, peer.Address)
	if err != nil {
		return false, err
	}
	if ok {
		s.cfg.Address = peer.Address
		s.log.Debug("connected", "address", peer.Address)
	}
	return ok, nil
}

func (s *Session) locate(ctx context.Context) (discovery.Peer, bool, error) {
	peers, err := s.directory.Scan(ctx, s.scanWait)
	if err != nil {
		return discovery.Peer{}, false, fmt.Errorf("scan: %w", err)
	}
	for _, p := range peers {
		if strings.Contains(p.Name, s.cfg.Name) {
			return p, true, nil
		}
	}
	return discovery.Peer{}, false, nil
}

// Disconnect closes the channel. Safe to call when not connected.
func (s *Session) Disconnect() {
	if s.transport.Connected() {
		if err := s.transport.Disconnect(); err != nil {
			s.log.Warn("disconnect failed", "error", err)
		}
	}
}

// Send writes one packet to the lamp's write characteristic and then waits
// out the settle delay. The write itself cannot be cancelled once issued;
// the delay respects ctx.
func (s *Session) Send(ctx context.Context, pkt protocol.Packet, delay time.Duration) error {
	if !s.transport.Connected() {
		return ErrNotConnected
	}
	if err := s.transport.Write(ctx, s.cfg.WriteCharUUID, pkt.Bytes()); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return sleep(ctx, delay)
}

func (s *Session) SetRGB(ctx context.Context, r, g, b int) error {
	return s.Send(ctx, protocol.SetColor(r, g, b), DefaultDelay)
}

// SetNamedColor sets one of the app's named colors.
func (s *Session) SetNamedColor(ctx context.Context, name string) error {
	r, g, b, err := protocol.NamedColor(name)
	if err != nil {
		return err
	}
	return s.SetRGB(ctx, r, g, b)
}

func (s *Session) SetBrightness(ctx context.Context, level int) error {
	return s.Send(ctx, protocol.SetBrightness(level), DefaultDelay)
}

func (s *Session) SetSpeed(ctx context.Context, level int) error {
	return s.Send(ctx, protocol.SetSpeed(level), DefaultDelay)
}

func (s *Session) SetAnimation(ctx context.Context, mode int) error {
	return s.Send(ctx, protocol.SetAnimation(mode), DefaultDelay)
}

func (s *Session) PowerOn(ctx context.Context) error {
	return s.Send(ctx, protocol.PowerOn(), PowerDelay)
}

func (s *Session) PowerOff(ctx context.Context) error {
	return s.Send(ctx, protocol.PowerOff(), PowerDelay)
}

// SyncTime pushes the wall clock to the lamp. The lamp has no RTC, so this
// should run before arming timers.
func (s *Session) SyncTime(ctx context.Context, now time.Time) error {
	return s.Send(ctx, protocol.SyncTime(now), DefaultDelay)
}

func (s *Session) SetTimerOn(ctx context.Context, hour, minute int) error {
	return s.Send(ctx, protocol.SetTimerOn(hour, minute), DefaultDelay)
}

func (s *Session) SetTimerOff(ctx context.Context, hour, minute int) error {
	return s.Send(ctx, protocol.SetTimerOff(hour, minute), DefaultDelay)
}

func (s *Session) DisableTimerOn(ctx context.Context) error {
	return s.Send(ctx, protocol.DisableTimerOn(), DefaultDelay)
}

func (s *Session) DisableTimerOff(ctx context.Context) error {
	return s.Send(ctx, protocol.DisableTimerOff(), DefaultDelay)
}

// sleep waits for d, returning early if ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
