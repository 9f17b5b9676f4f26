package lamp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotuslamp/internal/config"
	"lotuslamp/internal/discovery"
	"lotuslamp/internal/protocol"
)

type write struct {
	charUUID string
	payload  []byte
}

type fakeTransport struct {
	connected   bool
	failConnect map[string]bool
	connects    []string
	writes      []write
	writeErr    error
}

func (f *fakeTransport) Connect(_ context.Context, address string) (bool, error) {
	f.connects = append(f.connects, address)
	if f.failConnect[address] {
		return false, errors.New("connection refused")
	}
	f.connected = true
	return true, nil
}

func (f *fakeTransport) Write(_ context.Context, charUUID string, payload []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, write{charUUID: charUUID, payload: append([]byte(nil), payload...)})
	return nil
}

func (f *fakeTransport) Connected() bool { return f.connected }

func (f *fakeTransport) Disconnect() error {
	f.connected = false
	return nil
}

type fakeDirectory struct {
	peers   []discovery.Peer
	scanErr error
	scans   int
}

func (f *fakeDirectory) Scan(context.Context, time.Duration) ([]discovery.Peer, error) {
	f.scans++
	return f.peers, f.scanErr
}

func (f *fakeDirectory) Structure(context.Context, string, time.Duration) (*discovery.Structure, error) {
	return nil, nil
}

func testDevice() config.Device {
	d := config.NewDevice("Test Lamp")
	d.Address = "11:22:33:44:55:66"
	return d
}

func newTestSession(t *testing.T, tr Transport, dir Directory, opts ...Option) *Session {
	t.Helper()
	s, err := New(tr, dir, opts...)
	require.NoError(t, err)
	return s
}

func TestResolveExplicitConfig(t *testing.T) {
	store := storeWith(t, "Other Lamp")
	s := newTestSession(t, &fakeTransport{}, &fakeDirectory{}, WithConfig(testDevice()), WithStore(store))

	assert.Equal(t, "Test Lamp", s.Device().Name, "explicit config wins over the store")
	assert.Equal(t, config.DefaultWriteCharUUID, s.Device().WriteCharUUID)
}

func TestResolveExplicitConfigFillsDefaults(t *testing.T) {
	s := newTestSession(t, &fakeTransport{}, &fakeDirectory{}, WithConfig(config.Device{Name: "Bare"}))
	assert.Equal(t, config.DefaultServiceUUID, s.Device().ServiceUUID)
}

func storeWith(t *testing.T, names ...string) *config.Store {
	t.Helper()
	s, err := config.OpenDefault(nil)
	require.NoError(t, err)
	for _, n := range names {
		s.Add(config.NewDevice(n))
	}
	return s
}

func TestResolveByName(t *testing.T) {
	store := storeWith(t, "Living Room", "Bedroom")

	s := newTestSession(t, &fakeTransport{}, &fakeDirectory{}, WithStore(store), WithDeviceName("Bedroom"))
	assert.Equal(t, "Bedroom", s.Device().Name)
}

func TestResolveByNameNotFound(t *testing.T) {
	store := storeWith(t, "Living Room", "Bedroom")

	_, err := New(&fakeTransport{}, &fakeDirectory{}, WithStore(store), WithDeviceName("Garage"))
	require.ErrorIs(t, err, ErrDeviceNotFound)
	assert.Contains(t, err.Error(), "Living Room", "error lists the available device names")
	assert.Contains(t, err.Error(), "Bedroom")
}

func TestResolveDefaultDevice(t *testing.T) {
	store := storeWith(t, "First", "Second")

	s := newTestSession(t, &fakeTransport{}, &fakeDirectory{}, WithStore(store))
	assert.Equal(t, "First", s.Device().Name)
}

func TestResolveNothingConfigured(t *testing.T) {
	store := storeWith(t)

	_, err := New(&fakeTransport{}, &fakeDirectory{}, WithStore(store))
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.Contains(t, err.Error(), "Option 1")
	assert.Contains(t, err.Error(), "setup")
}

func TestConnectDirect(t *testing.T) {
	tr := &fakeTransport{}
	dir := &fakeDirectory{}
	s := newTestSession(t, tr, dir, WithConfig(testDevice()))

	ok, err := s.Connect(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"11:22:33:44:55:66"}, tr.connects)
	assert.Zero(t, dir.scans, "no scan when the stored address works")
}

func TestConnectStaleAddressFallsBackToScan(t *testing.T) {
	tr := &fakeTransport{failConnect: map[string]bool{"11:22:33:44:55:66": true}}
	dir := &fakeDirectory{peers: []discovery.Peer{
		{Name: "Someone Else", Address: "99:99:99:99:99:99"},
		{Name: "Test Lamp 5F", Address: "AA:BB:CC:DD:EE:FF"},
	}}
	s := newTestSession(t, tr, dir, WithConfig(testDevice()))

	ok, err := s.Connect(context.Background())
	require.NoError(t, err, "the stale-address failure is handled internally")
	require.True(t, ok)
	assert.Equal(t, 1, dir.scans)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", s.Device().Address, "re-discovered address replaces the stale one")
}

func TestConnectNoAddressScansByName(t *testing.T) {
	tr := &fakeTransport{}
	dir := &fakeDirectory{peers: []discovery.Peer{{Name: "Test Lamp", Address: "AA:BB:CC:DD:EE:FF"}}}
	cfg := config.NewDevice("Test Lamp")
	s := newTestSession(t, tr, dir, WithConfig(cfg))

	ok, err := s.Connect(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", s.Device().Address)
}

func TestConnectNotFoundIsNotAnError(t *testing.T) {
	s := newTestSession(t, &fakeTransport{}, &fakeDirectory{}, WithConfig(config.NewDevice("Test Lamp")))

	ok, err := s.Connect(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnectScanErrorSurfaces(t *testing.T) {
	dir := &fakeDirectory{scanErr: errors.New("adapter off")}
	s := newTestSession(t, &fakeTransport{}, dir, WithConfig(config.NewDevice("Test Lamp")))

	_, err := s.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adapter off")
}

func TestSendRequiresConnection(t *testing.T) {
	s := newTestSession(t, &fakeTransport{}, &fakeDirectory{}, WithConfig(testDevice()))

	err := s.Send(context.Background(), protocol.PowerOn(), 0)
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestSendWritesToConfiguredCharacteristic(t *testing.T) {
	tr := &fakeTransport{}
	cfg := testDevice()
	cfg.WriteCharUUID = "0000FFE9-0000-1000-8000-00805F9B34FB"
	s := newTestSession(t, tr, &fakeDirectory{}, WithConfig(cfg))

	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	pkt := protocol.SetColor(1, 2, 3)
	require.NoError(t, s.Send(context.Background(), pkt, 0))

	require.Len(t, tr.writes, 1)
	assert.Equal(t, "0000FFE9-0000-1000-8000-00805F9B34FB", tr.writes[0].charUUID)
	assert.Equal(t, pkt.Bytes(), tr.writes[0].payload)
}

func TestSendDelayRespectsContext(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr, &fakeDirectory{}, WithConfig(testDevice()))
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = s.Send(ctx, protocol.PowerOn(), time.Minute)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, tr.writes, 1, "the write itself is not retracted")
}

func TestDisconnectIdempotent(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr, &fakeDirectory{}, WithConfig(testDevice()))

	s.Disconnect()
	_, err := s.Connect(context.Background())
	require.NoError(t, err)
	s.Disconnect()
	s.Disconnect()
	assert.False(t, tr.Connected())
}

func TestPulse(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr, &fakeDirectory{}, WithConfig(testDevice()))
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Pulse(context.Background(), 255, 0, 0, 2, time.Millisecond))

	require.Len(t, tr.writes, 4, "each pulse is color then black")
	assert.Equal(t, protocol.SetColor(255, 0, 0).Bytes(), tr.writes[0].payload)
	assert.Equal(t, protocol.SetColor(0, 0, 0).Bytes(), tr.writes[1].payload)
	assert.Equal(t, protocol.SetColor(255, 0, 0).Bytes(), tr.writes[2].payload)
	assert.Equal(t, protocol.SetColor(0, 0, 0).Bytes(), tr.writes[3].payload)
}

func TestRainbow(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr, &fakeDirectory{}, WithConfig(testDevice()))
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Rainbow(context.Background(), 4*time.Millisecond, 4))

	require.Len(t, tr.writes, 4)
	assert.Equal(t, protocol.SetColor(255, 0, 0).Bytes(), tr.writes[0].payload, "the sweep starts at red")
}

func TestRainbowCancelledBetweenSteps(t *testing.T) {
	tr := &fakeTransport{}
	s := newTestSession(t, tr, &fakeDirectory{}, WithConfig(testDevice()))
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, s.Rainbow(ctx, time.Second, 30), context.Canceled)
	assert.Empty(t, tr.writes)
}

func TestHSVToRGB(t *testing.T) {
	for _, tt := range []struct {
		name    string
		h, s, v float64
		r, g, b int
	}{
		{name: "red", h: 0, s: 1, v: 1, r: 255, g: 0, b: 0},
		{name: "green", h: 120, s: 1, v: 1, r: 0, g: 255, b: 0},
		{name: "blue", h: 240, s: 1, v: 1, r: 0, g: 0, b: 255},
		{name: "white", h: 0, s: 0, v: 1, r: 255, g: 255, b: 255},
		{name: "black", h: 0, s: 1, v: 0, r: 0, g: 0, b: 0},
		{name: "wraps", h: 360, s: 1, v: 1, r: 255, g: 0, b: 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HSVToRGB(tt.h, tt.s, tt.v)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}
