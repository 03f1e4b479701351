package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ConnectionManager fans league events out to the websocket connections of
// each league
type ConnectionManager struct {
	leagueConnections map[uuid.UUID]map[*Connection]bool
	mu                sync.RWMutex

	upgrader    websocket.Upgrader
	config      ConnectionConfig
	broadcastCh chan BroadcastMessage
}

// Connection is one client socket subscribed to a league
type Connection struct {
	ID          string
	UserID      uuid.UUID
	LeagueID    uuid.UUID
	Conn        *websocket.Conn
	Send        chan []byte
	Manager     *ConnectionManager
	ConnectedAt time.Time
}

// ConnectionConfig holds configuration for websocket connections
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	SendBuffer      int
	CheckOrigin     func(r *http.Request) bool
}

// BroadcastMessage is a queued event for one league
type BroadcastMessage struct {
	LeagueID uuid.UUID
	Event    *LeagueEvent
}

// DefaultConnectionConfig returns default websocket configuration
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		SendBuffer:      256,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// NewConnectionManager creates a new websocket connection manager
func NewConnectionManager(config ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		leagueConnections: make(map[uuid.UUID]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan BroadcastMessage, 1000),
	}
}

// Start processes broadcast messages until ctx is cancelled
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			cm.closeAll()
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a websocket subscribed to a league
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, userID, leagueID uuid.UUID) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		UserID:      userID,
		LeagueID:    leagueID,
		Conn:        conn,
		Send:        make(chan []byte, cm.config.SendBuffer),
		Manager:     cm,
		ConnectedAt: time.Now(),
	}

	cm.registerConnection(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("user_id", userID.String()).
		Str("league_id", leagueID.String()).
		Msg("websocket connection established")

	return nil
}

func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.leagueConnections[conn.LeagueID] == nil {
		cm.leagueConnections[conn.LeagueID] = make(map[*Connection]bool)
	}
	cm.leagueConnections[conn.LeagueID][conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("league_id", conn.LeagueID.String()).
		Int("total_connections", len(cm.leagueConnections[conn.LeagueID])).
		Msg("connection registered")
}

func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	connections, exists := cm.leagueConnections[conn.LeagueID]
	if !exists {
		return
	}
	if _, exists := connections[conn]; !exists {
		return
	}

	delete(connections, conn)
	close(conn.Send)
	if len(connections) == 0 {
		delete(cm.leagueConnections, conn.LeagueID)
	}

	log.Info().
		Str("connection_id", conn.ID).
		Str("user_id", conn.UserID.String()).
		Str("league_id", conn.LeagueID.String()).
		Msg("connection unregistered")
}

func (cm *ConnectionManager) closeAll() {
	cm.mu.RLock()
	var all []*Connection
	for _, connections := range cm.leagueConnections {
		for conn := range connections {
			all = append(all, conn)
		}
	}
	cm.mu.RUnlock()

	for _, conn := range all {
		cm.unregisterConnection(conn)
	}
}

// BroadcastToLeague queues an event for every connection of a league. The
// event is dropped when the queue is full.
func (cm *ConnectionManager) BroadcastToLeague(leagueID uuid.UUID, event *LeagueEvent) {
	select {
	case cm.broadcastCh <- BroadcastMessage{LeagueID: leagueID, Event: event}:
	default:
		log.Warn().Str("league_id", leagueID.String()).Msg("broadcast channel full, dropping message")
	}
}

func (cm *ConnectionManager) handleBroadcast(message BroadcastMessage) {
	cm.mu.RLock()
	var targets []*Connection
	for conn := range cm.leagueConnections[message.LeagueID] {
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	eventData, err := json.Marshal(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	for _, conn := range targets {
		if !cm.enqueue(conn, eventData) {
			log.Warn().
				Str("connection_id", conn.ID).
				Str("user_id", conn.UserID.String()).
				Msg("connection send buffer full, closing connection")
			cm.unregisterConnection(conn)
		}
	}

	log.Debug().
		Str("event_type", message.Event.Type).
		Str("league_id", message.LeagueID.String()).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

// enqueue holds the read lock so Send cannot be closed underneath it
func (cm *ConnectionManager) enqueue(conn *Connection, data []byte) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.leagueConnections[conn.LeagueID][conn] {
		return true
	}
	select {
	case conn.Send <- data:
		return true
	default:
		return false
	}
}

// ConnectionCount returns the number of live connections for a league
func (cm *ConnectionManager) ConnectionCount(leagueID uuid.UUID) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.leagueConnections[leagueID])
}

// Stats summarises the live connections
type Stats struct {
	TotalConnections  int            `json:"total_connections"`
	ActiveLeagues     int            `json:"active_leagues"`
	LeagueConnections map[string]int `json:"league_connections"`
}

// GetConnectionStats returns statistics about active connections
func (cm *ConnectionManager) GetConnectionStats() Stats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := Stats{
		ActiveLeagues:     len(cm.leagueConnections),
		LeagueConnections: make(map[string]int, len(cm.leagueConnections)),
	}
	for leagueID, connections := range cm.leagueConnections {
		stats.TotalConnections += len(connections)
		stats.LeagueConnections[leagueID.String()] = len(connections)
	}
	return stats
}

// writePump sends queued events and pings to the socket
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to websocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump drains client frames and keeps the read deadline alive. Clients
// only listen; anything they send is discarded.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected websocket close error")
			}
			return
		}
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}
