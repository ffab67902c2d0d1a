package net

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

// Client is a CLIENT's connection to a host hub.
type Client struct {
	conn *websocket.Conn

	// writes must not interleave
	mu sync.Mutex
}

// Dial connects to the hub behind a share link or ws:// URL.
func Dial(ctx context.Context, link string) (*Client, error) {
	target := link
	if !isWebSocketURL(link) {
		u, err := WebSocketURL(link)
		if err != nil {
			return nil, err
		}
		target = u
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

func isWebSocketURL(s string) bool {
	return strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
}

// LocalAddr is the client's end of the connection.
func (c *Client) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Send writes one message.
func (c *Client) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// Receive blocks for the next message.
func (c *Client) Receive() (Message, error) {
	var msg Message
	if err := c.conn.ReadJSON(&msg); err != nil {
		return Message{}, fmt.Errorf("receive: %w", err)
	}
	return msg, nil
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.mu.Unlock()
	return c.conn.Close()
}

// Sync keeps scene in step with the host until ctx ends or the connection
// drops. Local changes are sent through scene.OnChange, which Sync
// replaces. onRemote, if not nil, sees every element the host changed.
func (c *Client) Sync(ctx context.Context, scene *state.Scene, onRemote func([]element.Element)) error {
	scene.OnChange = func(changed []element.Element) {
		msg := Message{Type: MessageUpdate, Elements: changed, OwnerID: state.SiteID(), Revision: scene.Revision()}
		if err := c.Send(msg); err != nil {
			logging.L().Warn("failed to send update", "error", err)
		}
	}

	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		msg, err := c.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
				return nil
			}
			return err
		}

		scene.ObserveRevision(msg.Revision)
		changed := scene.Reconcile(msg.Elements)
		if msg.Type == MessageHello {
			// Push what the host is missing.
			if err := c.Send(Message{Type: MessageUpdate, Elements: scene.Snapshot(), OwnerID: state.SiteID()}); err != nil {
				return err
			}
		}
		if onRemote != nil && len(changed) > 0 {
			onRemote(changed)
		}
	}
}
