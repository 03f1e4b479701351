// Package gateway relays league events from JetStream to websocket clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Service wires the connection manager, websocket handler and event consumer
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
}

// Config holds configuration for the league gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the league gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService creates a new league gateway service
func NewService(config Config, auth Authenticator, members MembershipChecker) (*Service, error) {
	connectionManager := NewConnectionManager(config.ConnectionConfig)

	eventConsumer, err := NewEventConsumer(connectionManager, config.JetStreamConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, auth, members),
		eventConsumer:     eventConsumer,
	}, nil
}

// Start runs the gateway until ctx is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting league gateway service")

	go s.connectionManager.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.eventConsumer.Start(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			s.Stop()
			return fmt.Errorf("event consumer failed: %w", err)
		}
	}

	log.Info().Msg("league gateway service shutting down")
	return s.Stop()
}

// Stop shuts down the event consumer. Connections close with the manager's context.
func (s *Service) Stop() error {
	if err := s.eventConsumer.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop event consumer")
	}
	log.Info().Msg("league gateway service stopped")
	return nil
}

// RegisterRoutes registers the websocket HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	log.Info().Msg("league gateway routes registered")
}
