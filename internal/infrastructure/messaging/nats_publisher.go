package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/config"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// MovementPublisher publishes recorded whale movements to NATS. When NATS is
// disabled in the configuration every publish is a no-op, so the application
// service can always hold a publisher.
type MovementPublisher struct {
	conn   *nats.Conn
	config *config.NATSConfig
	logger *logger.Logger
}

// NewMovementPublisher creates a new movement publisher
func NewMovementPublisher(cfg *config.NATSConfig, logger *logger.Logger) *MovementPublisher {
	return &MovementPublisher{
		config: cfg,
		logger: logger.WithComponent("movement-publisher"),
	}
}

// Connect connects to the NATS server. Skipped entirely when disabled.
func (p *MovementPublisher) Connect(ctx context.Context) error {
	if !p.config.Enabled {
		p.logger.Info("NATS is disabled, movement publishing is off")
		return nil
	}

	p.logger.Info("Connecting to NATS server", zap.String("url", p.config.URL))

	opts := []nats.Option{
		nats.Name("whalescope-tracker"),
		nats.Timeout(p.config.ConnectTimeout),
		nats.ReconnectWait(p.config.ReconnectDelay),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			p.logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			p.logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(p.config.URL, opts...)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}

	p.conn = conn
	p.logger.Info("Connected to NATS")
	return nil
}

// PublishMovement publishes a movement as JSON on
// <prefix>.movements.<mint>. A no-op when NATS is disabled or disconnected.
func (p *MovementPublisher) PublishMovement(ctx context.Context, movement *entity.WhaleMovement) error {
	if !p.config.Enabled || p.conn == nil {
		return nil
	}

	data, err := json.Marshal(movement)
	if err != nil {
		return fmt.Errorf("failed to marshal movement: %w", err)
	}

	subject := fmt.Sprintf("%s.movements.%s", p.config.SubjectPrefix, movement.TokenMint)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish movement: %w", err)
	}

	p.logger.Debug("Published movement",
		zap.String("subject", subject),
		zap.String("id", movement.ID))
	return nil
}

// Disconnect closes the NATS connection
func (p *MovementPublisher) Disconnect() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
		p.logger.Info("Disconnected from NATS")
	}
	return nil
}

// IsConnected checks if connected to NATS
func (p *MovementPublisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

var _ service.MovementPublisher = (*MovementPublisher)(nil)
