// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package live pushes visitor and contact events to connected
// websocket clients.
package live

import (
	"context"
	"log/slog"
	"sync"
)

// Message types pushed to clients.
const (
	TypeVisitorCount  = "visitorCount"
	TypeTotalVisitors = "totalVisitors"
	TypeUniqueToday   = "uniqueToday"
	TypeOnlineUsers   = "onlineUsers"
	TypeNewVisitor    = "newVisitor"
	TypeNewContact    = "newContact"
)

// Message is the envelope for everything sent over the websocket.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub maintains the set of connected clients and broadcasts messages to
// them. Each browser tab counts as one online user.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool

	broadcast  chan Message
	register   chan *Client
	unregister chan *Client

	log *slog.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run processes registrations and broadcasts until ctx is canceled, then
// closes every client connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("websocket client connected", "clients", count)
			h.Broadcast(TypeOnlineUsers, count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("websocket client disconnected", "clients", count)
			h.Broadcast(TypeOnlineUsers, count)

		case msg := <-h.broadcast:
			h.broadcastToClients(msg)
		}
	}
}

// Broadcast queues a message for every connected client. The message is
// dropped when the hub's queue is full rather than blocking the caller.
func (h *Hub) Broadcast(msgType string, data any) {
	msg := Message{Type: msgType, Data: data}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("websocket broadcast queue full, dropping message", "type", msgType)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) broadcastToClients(msg Message) {
	h.mu.RLock()
	var full []*Client
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			full = append(full, client)
		}
	}
	h.mu.RUnlock()

	if len(full) == 0 {
		return
	}

	// Clients that cannot keep up are dropped.
	h.mu.Lock()
	for _, client := range full {
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
		}
	}
	h.mu.Unlock()
	h.log.Warn("dropped slow websocket clients", "count", len(full))
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
