package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NotifyChannel is the channel the league_outbox insert trigger notifies on
const NotifyChannel = "league_outbox_events"

type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        // Channel name to LISTEN on
	FallbackInterval time.Duration // How often to poll for missed events
	MaxRetries       int
	RetryDelay       time.Duration
	PingInterval     time.Duration
	BatchSize        int32 // Max events to fetch per batch
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		DatabaseURL:      "",
		NotifyChannel:    NotifyChannel,
		FallbackInterval: 30 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// RelayApp is what the listener needs from the outbox App
type RelayApp interface {
	GetEventByID(ctx context.Context, eventID uuid.UUID) (*OutboxEvent, error)
	MarkEventSent(ctx context.Context, eventID uuid.UUID) error
	ProcessUnsentEvents(ctx context.Context, batchSize int32, processor func(event OutboxEvent) error) (int, error)
}

// Listener relays outbox rows to the publisher as soon as Postgres notifies
// about them, with a polling fallback for notifications missed while
// disconnected.
type Listener struct {
	app       RelayApp
	listener  *pq.Listener
	publisher Publisher
	cfg       ListenerConfig
}

func NewListener(app RelayApp, publisher Publisher, cfg ListenerConfig) (*Listener, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return &Listener{
		app:       app,
		listener:  l,
		publisher: publisher,
		cfg:       cfg,
	}, nil
}

func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	// Drain anything written while the relay was down.
	if err := l.processUnsent(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process unsent events")
	}

	pingTicker := time.NewTicker(l.cfg.PingInterval)
	fallbackTicker := time.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.Stop()
		case note := <-l.listener.Notify:
			if note == nil {
				// connection was re-established; notifications may have been lost
				if err := l.processUnsent(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process unsent events")
				}
				continue
			}
			if err := l.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.C:
			if err := l.processUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unsent events")
			}
		case <-pingTicker.C:
			if err := l.listener.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

func (l *Listener) Stop() error {
	if l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

// handleNotification handles a pg listen notification. Extra is the event id.
// It fetches the outbox event, publishes it and marks it sent.
func (l *Listener) handleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := l.app.GetEventByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			// already relayed by the fallback poll
			return nil
		}
		return fmt.Errorf("failed to fetch outbox event: %w", err)
	}

	if err := l.publishWithRetry(ctx, *event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	if err := l.app.MarkEventSent(ctx, id); err != nil {
		return err
	}

	log.Info().Str("event_id", id.String()).Str("event_type", event.EventType).Msg("published and marked event as sent")
	return nil
}

// processUnsent relays one batch of unsent events.
func (l *Listener) processUnsent(ctx context.Context) error {
	_, err := l.app.ProcessUnsentEvents(ctx, l.cfg.BatchSize, func(event OutboxEvent) error {
		return l.publishWithRetry(ctx, event)
	})
	return err
}

// publishWithRetry attempts to publish an outbox event with a linear backoff.
func (l *Listener) publishWithRetry(ctx context.Context, event OutboxEvent) error {
	var lastErr error

	for attempt := 0; attempt <= l.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := l.cfg.RetryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := l.publisher.Publish(ctx, event); err != nil {
			lastErr = err
			log.Error().
				Err(err).
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("failed to publish, retrying")
			continue
		}

		if attempt > 0 {
			log.Info().
				Int("attempt", attempt+1).
				Str("event_id", event.ID.String()).
				Msg("publish succeeded after retry")
		}
		return nil
	}

	return fmt.Errorf("publish failed after %d attempts: %w", l.cfg.MaxRetries+1, lastErr)
}
