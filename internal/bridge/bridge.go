package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"

	"lotuslamp/internal/lamp"
)

// Bridge subscribes to <prefix>/set/# and applies each command to a single
// session. Commands are serialized through one mutex since the lamp accepts
// one in-flight command at a time.
type Bridge struct {
	mu      sync.Mutex
	session *lamp.Session
	prefix  string
	log     *slog.Logger
}

func New(session *lamp.Session, prefix string, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		session: session,
		prefix:  prefix,
		log:     logger.With("component", "bridge"),
	}
}

// Run connects to the broker and serves commands until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context, brokerURL string) error {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return fmt.Errorf("broker url: %w", err)
	}

	topic := b.prefix + "/set/#"
	cfg := autopaho.ClientConfig{
		ServerUrls: []*url.URL{u},
		KeepAlive:  30,
		OnConnectionUp: func(cm *autopaho.ConnectionManager, _ *paho.Connack) {
			b.log.Info("connected to mqtt broker", "topic", topic)
			if _, err := cm.Subscribe(ctx, &paho.Subscribe{
				Subscriptions: []paho.SubscribeOptions{{Topic: topic, QoS: 0}},
			}); err != nil {
				b.log.Error("subscribe failed", "error", err)
			}
			if _, err := cm.Publish(ctx, &paho.Publish{
				Topic:   b.prefix + "/status",
				Payload: []byte("online"),
				Retain:  true,
			}); err != nil {
				b.log.Warn("status publish failed", "error", err)
			}
		},
		OnConnectError: func(err error) {
			b.log.Warn("mqtt connect error", "error", err)
		},
		ClientConfig: paho.ClientConfig{
			ClientID: "lotuslamp-bridge",
		},
	}

	conn, err := autopaho.NewConnection(ctx, cfg)
	if err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	conn.AddOnPublishReceived(func(rx autopaho.PublishReceived) (bool, error) {
		b.handle(ctx, rx.Packet.Topic, rx.Packet.Payload)
		return true, nil
	})

	if err := conn.AwaitConnection(ctx); err != nil {
		return fmt.Errorf("mqtt: wait for connection: %w", err)
	}

	<-ctx.Done()
	return conn.Disconnect(context.Background())
}

func (b *Bridge) handle(ctx context.Context, topic string, payload []byte) {
	action, err := Route(b.prefix, topic, payload)
	if err != nil {
		b.log.Warn("ignoring message", "topic", topic, "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.apply(ctx, action); err != nil {
		b.log.Error("command failed", "topic", topic, "error", err)
	}
}

func (b *Bridge) apply(ctx context.Context, action Action) error {
	switch action.Kind {
	case KindPower:
		if action.On {
			return b.session.PowerOn(ctx)
		}
		return b.session.PowerOff(ctx)
	case KindColor:
		return b.session.SetRGB(ctx, action.R, action.G, action.B)
	case KindBrightness:
		return b.session.SetBrightness(ctx, action.Level)
	case KindSpeed:
		return b.session.SetSpeed(ctx, action.Level)
	case KindMode:
		return b.session.SetAnimation(ctx, action.Mode)
	}
	return nil
}
