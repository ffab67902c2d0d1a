package net

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// peer is one connected client. Writes go through send so a single
// goroutine owns the connection's writer.
type peer struct {
	conn *websocket.Conn
	addr string
	send chan Message
	log  *slog.Logger
}

// Hub is run by the HOST. It reconciles peer updates into the host scene
// and relays them to every other peer.
type Hub struct {
	scene    *state.Scene
	upgrader websocket.Upgrader

	mu    sync.RWMutex
	peers map[*peer]bool

	// OnRemoteChange, when set, is called with elements a peer changed.
	OnRemoteChange func(changed []element.Element)
}

// NewHub creates a hub serving scene.
func NewHub(scene *state.Scene) *Hub {
	return &Hub{
		scene: scene,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Peers are other boards on the LAN, not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]bool),
	}
}

// Peers returns the number of connected peers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.L().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	addr := conn.RemoteAddr().String()
	ctx := logging.WithAttrs(r.Context(), "remote", addr)
	p := &peer{conn: conn, addr: addr, send: make(chan Message, sendBuffer), log: logging.From(ctx)}
	p.send <- Message{Type: MessageHello, Elements: h.scene.Snapshot(), Revision: h.scene.Revision()}

	h.mu.Lock()
	h.peers[p] = true
	h.mu.Unlock()
	p.log.Info("peer connected")

	go h.writePump(p)
	h.readPump(p)
}

// Publish sends locally changed elements to every peer.
func (h *Hub) Publish(changed []element.Element) {
	if len(changed) == 0 {
		return
	}
	h.broadcast(Message{Type: MessageUpdate, Elements: changed, OwnerID: state.SiteID(), Revision: h.scene.Revision()}, nil)
}

// Clear soft-deletes the whole host scene and tells every peer.
func (h *Hub) Clear() []element.Element {
	var deleted []element.Element
	for _, el := range h.scene.Snapshot() {
		if !el.Common().IsDeleted {
			element.Delete(el)
			deleted = append(deleted, el)
		}
	}
	changed := h.scene.Reconcile(deleted)
	h.broadcast(Message{Type: MessageUpdate, Elements: changed, OwnerID: state.SiteID(), Revision: h.scene.Revision()}, nil)
	return changed
}

// Close disconnects every peer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		p.conn.Close()
	}
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.peers[p] {
		delete(h.peers, p)
		close(p.send)
		p.log.Info("peer disconnected")
	}
}

func (h *Hub) broadcast(msg Message, exclude *peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == exclude {
			continue
		}
		select {
		case p.send <- msg:
		default:
			p.log.Warn("peer send buffer full, dropping message", "type", msg.Type)
		}
	}
}

func (h *Hub) readPump(p *peer) {
	defer func() {
		h.remove(p)
		p.conn.Close()
	}()

	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Warn("peer read failed", "error", err)
			}
			return
		}
		p.log.Debug("hub received", "type", msg.Type, "elements", len(msg.Elements))

		switch msg.Type {
		case MessageUpdate:
			h.scene.ObserveRevision(msg.Revision)
			changed := h.scene.Reconcile(msg.Elements)
			if len(changed) == 0 {
				continue
			}
			h.broadcast(Message{Type: MessageUpdate, Elements: changed, OwnerID: msg.OwnerID, Revision: h.scene.Revision()}, p)
			if h.OnRemoteChange != nil {
				h.OnRemoteChange(changed)
			}
		case MessageClear:
			changed := h.Clear()
			if h.OnRemoteChange != nil && len(changed) > 0 {
				h.OnRemoteChange(changed)
			}
		default:
			p.log.Warn("unknown message type", "type", msg.Type)
		}
	}
}

func (h *Hub) writePump(p *peer) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteJSON(msg); err != nil {
				p.log.Warn("peer write failed", "error", err)
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
