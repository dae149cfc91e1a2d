package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 5 * time.Second
)

// Subscriber is one websocket connection receiving change events.
type Subscriber struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte
}

func NewSubscriber(hub *Hub, conn *ws.Conn) *Subscriber {
	return &Subscriber{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Run blocks until the connection closes or ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) {
	s.hub.Register(s)
	defer s.hub.Unregister(s)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The feed is one-way. CloseRead discards inbound frames and cancels
	// ctx once the peer goes away.
	ctx = s.conn.CloseRead(ctx)
	s.writeLoop(ctx)
}

func (s *Subscriber) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-s.send:
			if !ok {
				s.conn.Close(ws.StatusNormalClosure, "")
				return
			}
			if err := s.write(ctx, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := s.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Subscriber) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return s.conn.Write(ctx, ws.MessageText, msg)
}
