package realtime

import (
	"context"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"ride-hail-client/internal/common/config"
	"ride-hail-client/internal/common/logger"
	"ride-hail-client/internal/contracts"
	"ride-hail-client/internal/metrics"
)

// State is the connection lifecycle of the push channel.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
)

// Handler receives fan-out events. Handlers registered for a concrete event
// type get only that type; handlers registered for contracts.EventMessage get
// every well-formed frame.
type Handler func(evt contracts.Event)

// Subscription identifies a registered handler for later removal.
type Subscription struct {
	eventType string
	id        uint64
}

// TokenFunc supplies the current bearer token at (re)connect time, so a
// reconnect after a token refresh picks up the fresh credential.
type TokenFunc func() string

// Client maintains a single authenticated WebSocket to the realtime gateway
// and fans incoming frames out to listeners. All exported methods are safe
// for concurrent use.
type Client struct {
	cfg   config.RealtimeConfig
	log   *logger.Logger
	token TokenFunc

	dialer *websocket.Dialer

	mu        sync.RWMutex
	conn      *websocket.Conn
	state     State
	attempts  int
	nextSubID uint64
	listeners map[string]map[uint64]Handler
	epoch     uint64

	closed bool
}

// New builds a disconnected client. Call Connect to open the socket.
func New(cfg config.RealtimeConfig, token TokenFunc, log *logger.Logger) *Client {
	return &Client{
		cfg:   cfg,
		log:   log,
		token: token,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		state:     StateDisconnected,
		listeners: make(map[string]map[uint64]Handler),
	}
}

// State reports the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Connected reports whether the socket is currently open.
func (c *Client) Connected() bool {
	return c.State() == StateConnected
}

// AddListener registers a handler for eventType and returns a subscription
// handle for removal. Use contracts.EventMessage to receive every frame.
func (c *Client) AddListener(eventType string, h Handler) Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSubID++
	if c.listeners[eventType] == nil {
		c.listeners[eventType] = make(map[uint64]Handler)
	}
	c.listeners[eventType][c.nextSubID] = h
	return Subscription{eventType: eventType, id: c.nextSubID}
}

// RemoveListener unregisters a previously added handler. Removing an unknown
// subscription is a no-op.
func (c *Client) RemoveListener(sub Subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.listeners[sub.eventType]; ok {
		delete(set, sub.id)
		if len(set) == 0 {
			delete(c.listeners, sub.eventType)
		}
	}
}

// Connect opens the socket. Without a token it logs and stays disconnected.
// An already-open socket is torn down first so at most one connection exists.
func (c *Client) Connect(ctx context.Context) {
	token := c.token()
	if token == "" {
		c.log.Warn(ctx, "ws_connect_skipped", "no auth token, staying disconnected", nil)
		return
	}

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.closed = false
	c.attempts = 0
	c.epoch++
	epoch := c.epoch
	c.state = StateConnecting
	c.mu.Unlock()

	c.dial(ctx, epoch)
}

// Disconnect closes the socket deliberately; no reconnect follows.
func (c *Client) Disconnect(ctx context.Context) {
	c.mu.Lock()
	c.closed = true
	c.epoch++
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		conn.Close()
	}
	metrics.WSConnected.Set(0)
	c.emit(contracts.Event{Type: contracts.EventDisconnected})
}

// SendMessage writes a JSON frame when connected. When disconnected the frame
// is logged and dropped rather than queued.
func (c *Client) SendMessage(ctx context.Context, v any) {
	c.mu.RLock()
	conn := c.conn
	state := c.state
	c.mu.RUnlock()

	if state != StateConnected || conn == nil {
		c.log.Warn(ctx, "ws_send_dropped", "not connected, frame dropped", map[string]any{
			"state": string(state),
		})
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		c.log.Error(ctx, "ws_send_marshal", "failed to encode outbound frame", err, nil)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.log.Error(ctx, "ws_send_write", "failed to write frame", err, nil)
	}
}

func (c *Client) dial(ctx context.Context, epoch uint64) {
	token := c.token()
	if token == "" {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
		return
	}

	url := c.cfg.URL + "/" + token
	conn, _, err := c.dialer.DialContext(ctx, url, nil)
	if err != nil {
		c.log.Warn(ctx, "ws_dial_failed", "realtime dial failed", map[string]any{
			"error": err.Error(),
		})
		c.emit(contracts.Event{Type: contracts.EventError, Err: err})
		c.scheduleReconnect(ctx, epoch)
		return
	}

	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.state = StateConnected
	c.attempts = 0
	c.mu.Unlock()

	metrics.WSConnected.Set(1)
	c.log.Info(ctx, "ws_connected", "realtime channel open", nil)
	c.emit(contracts.Event{Type: contracts.EventConnected})

	go c.readLoop(ctx, conn, epoch)
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, epoch uint64) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			stale := c.closed || epoch != c.epoch
			if !stale {
				c.conn = nil
			}
			c.mu.Unlock()

			metrics.WSConnected.Set(0)
			if stale {
				return
			}
			c.log.Warn(ctx, "ws_closed", "realtime channel closed", map[string]any{
				"error": err.Error(),
			})
			c.emit(contracts.Event{Type: contracts.EventDisconnected})
			c.scheduleReconnect(ctx, epoch)
			return
		}
		c.dispatch(ctx, payload)
	}
}

// dispatch parses one inbound frame and fans it out. Malformed frames are
// logged and dropped; they never tear down the connection.
func (c *Client) dispatch(ctx context.Context, payload []byte) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &head); err != nil || head.Type == "" {
		c.log.Warn(ctx, "ws_frame_dropped", "malformed frame dropped", map[string]any{
			"bytes": len(payload),
		})
		return
	}

	metrics.PushEvents.WithLabelValues(head.Type).Inc()
	evt := contracts.Event{Type: head.Type, Raw: payload}
	c.emit(evt)
}

// emit delivers evt to listeners of its concrete type and, for domain frames,
// to the catch-all message listeners.
func (c *Client) emit(evt contracts.Event) {
	c.mu.RLock()
	handlers := make([]Handler, 0, 4)
	for _, h := range c.listeners[evt.Type] {
		handlers = append(handlers, h)
	}
	if evt.Type != contracts.EventMessage {
		for _, h := range c.listeners[contracts.EventMessage] {
			handlers = append(handlers, h)
		}
	}
	c.mu.RUnlock()

	for _, h := range handlers {
		h(evt)
	}
}

func (c *Client) scheduleReconnect(ctx context.Context, epoch uint64) {
	c.mu.Lock()
	if c.closed || epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.attempts++
	attempt := c.attempts
	if attempt > c.cfg.MaxReconnectAttempts {
		c.state = StateDisconnected
		c.mu.Unlock()
		c.log.Error(ctx, "ws_reconnect_exhausted", "reconnect attempts exhausted", nil, map[string]any{
			"attempts": c.cfg.MaxReconnectAttempts,
		})
		c.emit(contracts.Event{Type: contracts.EventMaxReconnectAttempts})
		return
	}
	c.state = StateReconnecting
	c.mu.Unlock()

	metrics.Reconnects.Inc()
	c.log.Info(ctx, "ws_reconnect", "scheduling reconnect", map[string]any{
		"attempt": attempt,
		"max":     c.cfg.MaxReconnectAttempts,
	})

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.ReconnectInterval):
		}
		c.mu.RLock()
		stale := c.closed || epoch != c.epoch
		c.mu.RUnlock()
		if stale {
			return
		}
		c.dial(ctx, epoch)
	}()
}
