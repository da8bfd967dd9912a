package binance

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	BASE_WS_URL = "wss://data-stream.binance.vision/ws/!ticker@arr"
	// Connection timeouts
	PONG_TIMEOUT      = 60 * time.Second
	HANDSHAKE_TIMEOUT = 10 * time.Second
)

// WebSocketCallback is a callback function for handling WebSocket messages
type WebSocketCallback func(message []byte)

// ErrorCallback is a callback function for handling WebSocket errors
type ErrorCallback func(err error)

// SimpleWebSocketClient reads a single stream connection. onError is called
// once when the connection cannot be established or the read loop ends.
type SimpleWebSocketClient struct {
	wsURL string

	mu   sync.Mutex
	conn *websocket.Conn

	onMessage WebSocketCallback
	onError   ErrorCallback

	loopWg     sync.WaitGroup
	cancelFunc context.CancelFunc
}

// NewSimpleWebSocketClient creates a new simple WebSocket client
func NewSimpleWebSocketClient(wsURL string, onMessage WebSocketCallback, onError ErrorCallback) *SimpleWebSocketClient {
	if wsURL == "" {
		wsURL = BASE_WS_URL
	}

	return &SimpleWebSocketClient{
		wsURL:     wsURL,
		onMessage: onMessage,
		onError:   onError,
	}
}

// Start establishes connection to WebSocket server and starts the message loop
func (c *SimpleWebSocketClient) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: HANDSHAKE_TIMEOUT,
	}
	conn, _, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		c.onError(fmt.Errorf("failed to connect to WebSocket: %w", err))
		return
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	if err := conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		c.onError(fmt.Errorf("failed to set read deadline: %w", err))
		return
	}

	c.setupPingPong(conn)
	c.startMessageLoop(ctx, conn)
}

// Stop stops the message loop and closes the connection.
// It blocks until the message loop is completely terminated.
func (c *SimpleWebSocketClient) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.mu.Unlock()

	c.loopWg.Wait()
}

// setupPingPong answers server pings and extends the read deadline
func (c *SimpleWebSocketClient) setupPingPong(conn *websocket.Conn) {
	conn.SetPingHandler(func(appData string) error {
		if err := conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			return fmt.Errorf("failed to set read deadline in ping handler: %w", err)
		}
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(10*time.Second))
		if err != nil {
			c.onError(fmt.Errorf("error sending pong response: %w", err))
		}
		return nil
	})
}

// startMessageLoop begins reading messages from the WebSocket connection
func (c *SimpleWebSocketClient) startMessageLoop(ctx context.Context, conn *websocket.Conn) {
	c.loopWg.Add(1)

	go func() {
		defer c.loopWg.Done()

		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := conn.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
					c.onError(fmt.Errorf("failed to set read deadline in message loop: %w", err))
					return
				}
				_, message, err := conn.ReadMessage()
				if err != nil {
					if ctx.Err() == nil {
						c.onError(fmt.Errorf("error reading WebSocket message: %w", err))
					}
					return
				}

				c.onMessage(message)
			}
		}
	}()
}
