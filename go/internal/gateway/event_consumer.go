package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// JetStreamConsumerConfig holds configuration for the JetStream consumer
type JetStreamConsumerConfig struct {
	URL           string
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultJetStreamConsumerConfig returns default JetStream consumer configuration
func DefaultJetStreamConsumerConfig() JetStreamConsumerConfig {
	return JetStreamConsumerConfig{
		URL:           nats.DefaultURL,
		StreamName:    "LEAGUE_EVENTS",
		ConsumerName:  "league-gateway",
		SubjectFilter: "league.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Broadcaster receives decoded league events
type Broadcaster interface {
	BroadcastToLeague(leagueID uuid.UUID, event *LeagueEvent)
}

// EventConsumer consumes league events from JetStream and hands them to the
// connection manager
type EventConsumer struct {
	broadcaster Broadcaster
	nc          *nats.Conn
	js          jetstream.JetStream
	consumer    jetstream.Consumer
	config      JetStreamConsumerConfig
}

// NewEventConsumer connects to NATS and binds the durable consumer
func NewEventConsumer(broadcaster Broadcaster, config JetStreamConsumerConfig) (*EventConsumer, error) {
	opts := []nats.Option{
		nats.Name("league-gateway"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	ec := &EventConsumer{
		broadcaster: broadcaster,
		nc:          nc,
		js:          js,
		config:      config,
	}

	if err := ec.ensureConsumer(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}

	return ec, nil
}

func (ec *EventConsumer) ensureConsumer(ctx context.Context) error {
	stream, err := ec.js.Stream(ctx, ec.config.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          ec.config.ConsumerName,
		Durable:       ec.config.ConsumerName,
		Description:   "League gateway websocket consumer",
		FilterSubject: ec.config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    ec.config.MaxDeliver,
		AckWait:       ec.config.AckWait,
		MaxAckPending: ec.config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.StreamName).
		Msg("bound JetStream consumer")

	ec.consumer = consumer
	return nil
}

// Start consumes events until ctx is cancelled
func (ec *EventConsumer) Start(ctx context.Context) error {
	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.StreamName).
		Msg("starting JetStream event consumer")

	messageCh := make(chan jetstream.Msg, 100)

	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event consumer shutting down")
			return nil
		case msg := <-messageCh:
			ec.handle(msg)
		}
	}
}

// handle acks relayed events and terminates messages that can never decode
func (ec *EventConsumer) handle(msg jetstream.Msg) {
	err := ec.processMessage(msg.Data())
	switch {
	case err == nil:
		if ackErr := msg.Ack(); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ACK message")
		}
	case errors.Is(err, errUnknownEvent):
		log.Warn().Err(err).Str("subject", msg.Subject()).Msg("skipping event")
		if ackErr := msg.Ack(); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ACK message")
		}
	default:
		log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
		if termErr := msg.Term(); termErr != nil {
			log.Error().Err(termErr).Msg("failed to TERM message")
		}
	}
}

func (ec *EventConsumer) processMessage(data []byte) error {
	event, leagueID, err := decodeEnvelope(data)
	if err != nil {
		return err
	}

	ec.broadcaster.BroadcastToLeague(leagueID, event)

	log.Debug().
		Str("event_id", event.ID).
		Str("league_id", event.LeagueID).
		Str("event_type", event.Type).
		Msg("event broadcasted to websocket clients")
	return nil
}

// Stop closes the NATS connection
func (ec *EventConsumer) Stop() error {
	log.Info().Msg("stopping event consumer")
	if ec.nc != nil {
		ec.nc.Close()
	}
	return nil
}
