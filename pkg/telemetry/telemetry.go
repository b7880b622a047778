// Package telemetry adapts the core's link-cable contract onto a
// websocket so a remote client can sit on the other end of a serial
// exchange: SerialTX frames get pushed out to the socket, and bytes
// arriving from the socket become SerialRX's answer on the next poll.
// It implements serial.Peer without gbcore importing anything about
// websockets.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  256,
	WriteBufferSize: 256,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Link is a single remote serial partner reachable over a websocket. It
// is safe to install on a GameBoy via SetSerialPeer before a connection
// has arrived; SerialRX simply reports no byte available until one
// does.
type Link struct {
	mu    sync.Mutex
	conn  *websocket.Conn
	inbox chan uint8
}

// NewLink creates an unconnected Link. Handler returns an http.Handler
// that, once mounted and hit by exactly one client, becomes that Link's
// transport.
func NewLink() *Link {
	return &Link{inbox: make(chan uint8, 64)}
}

// Handler upgrades the first incoming request to a websocket and wires
// it as this Link's transport; subsequent requests are rejected with
// 409, since a link cable has exactly one partner.
func (l *Link) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.mu.Lock()
		if l.conn != nil {
			l.mu.Unlock()
			http.Error(w, "link already connected", http.StatusConflict)
			return
		}
		l.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}

		l.mu.Lock()
		l.conn = conn
		l.mu.Unlock()

		go l.readPump(conn)
	})
}

// readPump drains single-byte binary frames from the socket into inbox
// until the connection closes, at which point the Link reverts to the
// unconnected state so a new client can attach.
func (l *Link) readPump(conn *websocket.Conn) {
	defer func() {
		l.mu.Lock()
		if l.conn == conn {
			l.conn = nil
		}
		l.mu.Unlock()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		for _, b := range data {
			select {
			case l.inbox <- b:
			default:
			}
		}
	}
}

// SerialTX implements serial.Peer: it ships the transferred byte out as
// a one-byte binary websocket frame, best-effort. A write failure (no
// client connected, or a dead socket) is silently dropped. On the
// internal clock the core's serial transfer completes locally whether or
// not a partner heard it; on an external clock it completes only once a
// partner byte arrives.
func (l *Link) SerialTX(b uint8) {
	l.mu.Lock()
	conn := l.conn
	l.mu.Unlock()
	if conn == nil {
		return
	}
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	_ = conn.WriteMessage(websocket.BinaryMessage, []byte{b})
}

// SerialRX implements serial.Peer: it reports the next byte received
// from the remote partner since the last poll, if any arrived in time
// for this transfer's cycle budget.
func (l *Link) SerialRX() (uint8, bool) {
	select {
	case b := <-l.inbox:
		return b, true
	default:
		return 0, false
	}
}

// Close tears down any active connection. Safe to call with no client
// attached.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn == nil {
		return nil
	}
	err := l.conn.Close()
	l.conn = nil
	return err
}
