// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// VisitorInfo is the payload a client sends to identify its session.
type VisitorInfo struct {
	SessionID string `json:"sessionId"`
	Page      string `json:"page"`
	Referrer  string `json:"referrer"`
}

// inboundMessage is what clients may send over the socket.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Client is a middleman between a websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan Message

	// onVisitorInfo is invoked when the client identifies its session.
	onVisitorInfo func(info VisitorInfo)

	log *slog.Logger
}

// NewClient wraps an upgraded connection. onVisitorInfo may be nil.
func NewClient(hub *Hub, conn *websocket.Conn, onVisitorInfo func(VisitorInfo), log *slog.Logger) *Client {
	return &Client{
		hub:           hub,
		conn:          conn,
		send:          make(chan Message, 64),
		onVisitorInfo: onVisitorInfo,
		log:           log,
	}
}

// Start registers the client with the hub and begins its read and write
// loops.
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	go c.readPump()
}

// Send queues a message for this client only, dropping it when the
// client's buffer is full.
func (c *Client) Send(msg Message) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				c.log.Debug("websocket read error", "error", err)
			}
			return
		}

		if msg.Type == "visitor-info" && c.onVisitorInfo != nil {
			var info VisitorInfo
			if err := json.Unmarshal(msg.Data, &info); err != nil {
				c.log.Debug("malformed visitor-info payload", "error", err)
				continue
			}
			c.onVisitorInfo(info)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
