package lamp

import (
	"context"
	"time"

	"lotuslamp/internal/discovery"
)

// Transport is the connected-device channel the session writes through. The
// core depends only on this contract, not on any specific BLE stack.
type Transport interface {
	// Connect opens a channel to the given transport address. A false return
	// with nil error means the peer was simply not reachable; errors are
	// reserved for transport-level faults.
	Connect(ctx context.Context, address string) (bool, error)
	// Write sends an opaque payload to the named characteristic without
	// waiting for an acknowledgment.
	Write(ctx context.Context, charUUID string, payload []byte) error
	Connected() bool
	// Disconnect is idempotent.
	Disconnect() error
}

// Directory is the peer-discovery collaborator.
type Directory interface {
	// Scan returns whatever peers were seen when the timeout elapsed.
	Scan(ctx context.Context, timeout time.Duration) ([]discovery.Peer, error)
	// Structure enumerates one peer's services and characteristics, or
	// returns nil if the peer could not be read.
	Structure(ctx context.Context, address string, timeout time.Duration) (*discovery.Structure, error)
}
