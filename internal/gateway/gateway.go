// Package gateway terminates the WebSocket transport: upgrading HTTP
// requests on /ws (bots) and /spectate (spectators/operators), reading
// frames into the table's SessionLoop via Table's submit methods, and
// writing outbound frames back out over the socket.
package gateway

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"holdem-host/internal/table"
	"holdem-host/internal/wire"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Gateway wires the two WebSocket endpoints to a single Table.
type Gateway struct {
	table *table.Table
}

// New creates a Gateway serving t.
func New(t *table.Table) *Gateway {
	return &Gateway{table: t}
}

// connection is one live WebSocket socket. It implements broadcast.Sink.
type connection struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

func (c *connection) Send(frame []byte) {
	if frame == nil {
		return
	}
	select {
	case c.send <- frame:
	default:
		// Slow consumer: drop rather than block the single-threaded
		// SessionLoop that is calling Send via the Broadcaster.
	}
}

func (c *connection) sendError(code, msg string) {
	data, err := wire.Marshal(wire.ErrorFrame{
		Envelope: wire.Envelope{Type: "error", V: wire.ProtocolVersion},
		Code:     code, Msg: msg,
	})
	if err != nil {
		return
	}
	c.Send(data)
}

// HandleBot upgrades an incoming request on /ws and serves one bot
// connection until it disconnects.
func (g *Gateway) HandleBot(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("gateway: bot upgrade failed: %v", err)
		return
	}
	conn := &connection{id: uuid.NewString(), ws: ws, send: make(chan []byte, 64)}
	go g.writePump(conn)
	g.botReadPump(conn)
}

// HandleSpectator upgrades an incoming request on /spectate and serves one
// spectator or operator connection until it disconnects.
func (g *Gateway) HandleSpectator(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("gateway: spectator upgrade failed: %v", err)
		return
	}
	conn := &connection{id: uuid.NewString(), ws: ws, send: make(chan []byte, 64)}
	go g.writePump(conn)
	g.spectatorReadPump(conn)
}

func (g *Gateway) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) botReadPump(c *connection) {
	defer func() {
		g.table.BotDisconnect(c.id)
		c.ws.Close()
	}()
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	helloReceived := false
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if !helloReceived {
			hello, err := wire.DecodeHelloBot(raw)
			if err != nil {
				c.sendError("BAD_SCHEMA", err.Error())
				continue
			}
			if err := g.table.BotHello(c.id, c, hello); err != nil {
				return
			}
			helloReceived = true
			continue
		}

		frame, err := wire.Decode(raw)
		if err != nil {
			c.sendError("BAD_SCHEMA", err.Error())
			continue
		}
		if action, ok := frame.(*wire.ClientAction); ok {
			g.table.BotAction(c.id, action)
		}
	}
}

func (g *Gateway) spectatorReadPump(c *connection) {
	defer func() {
		g.table.SpectatorLeave(c.id)
		c.ws.Close()
	}()
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	helloReceived := false
	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if !helloReceived {
			hello, err := wire.DecodeHelloSpectator(raw)
			if err != nil {
				c.sendError("BAD_SCHEMA", err.Error())
				continue
			}
			if err := g.table.SpectatorHello(c.id, c, hello); err != nil {
				return
			}
			helloReceived = true
			continue
		}

		frame, err := wire.Decode(raw)
		if err != nil {
			continue // unknown/malformed control frames are silently dropped per §7
		}
		if ctrl, ok := frame.(*wire.Control); ok {
			g.table.Control(c.id, ctrl)
		}
	}
}
