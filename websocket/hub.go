package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/nirmaantech/portal_backend/models"
)

// Notification types pushed to connected dashboards
const (
	NotificationTypeOrderPlaced  = "order_placed"
	NotificationTypeOrderStatus  = "order_status"
	NotificationTypeLeadAssigned = "lead_assigned"
)

// Notification represents a message sent over WebSocket
type Notification struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected dashboard, keyed by portal username
type Client struct {
	Username string
	Role     models.Role
	Conn     *websocket.Conn
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Username] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if existing, ok := h.clients[client.Username]; ok && existing == client {
				delete(h.clients, client.Username)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToUser sends a notification to a specific portal user
func (h *Hub) SendToUser(username string, notification Notification) error {
	h.mu.RLock()
	client, ok := h.clients[username]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user not connected")
	}

	return client.Conn.WriteJSON(notification)
}

// BroadcastToRole sends a notification to every connected user of a role
func (h *Hub) BroadcastToRole(role models.Role, notification Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.Role == role {
			client.Conn.WriteJSON(notification)
		}
	}
}

// NotifyOrderPlaced fans an order out to admins and the attributed staff.
// The "None" sentinel on attribution fields never matches a connection.
func (h *Hub) NotifyOrderPlaced(order *models.Order) {
	notification := Notification{
		Type:    NotificationTypeOrderPlaced,
		Message: fmt.Sprintf("New order #%d received", order.OrderID),
		Data:    order,
	}

	h.BroadcastToRole(models.RoleAdmin, notification)
	for _, staffID := range []string{order.TelecallerDetails.ID, order.FranchiseDetails.ID, order.PartnerDetails.ID} {
		if staffID != "" && staffID != models.AttributionNone {
			h.SendToUser(staffID, notification)
		}
	}
}

// NotifyOrderStatus tells the attributed staff about an admin status change
func (h *Hub) NotifyOrderStatus(order *models.Order) {
	notification := Notification{
		Type:    NotificationTypeOrderStatus,
		Message: fmt.Sprintf("Order #%d is now %s", order.OrderID, order.Status),
		Data:    order,
	}

	for _, staffID := range []string{order.TelecallerDetails.ID, order.FranchiseDetails.ID, order.PartnerDetails.ID} {
		if staffID != "" && staffID != models.AttributionNone {
			h.SendToUser(staffID, notification)
		}
	}
}

// NotifyLeadAssigned tells an agent a lead landed on their dashboard
func (h *Hub) NotifyLeadAssigned(username string, lead *models.Lead) {
	h.SendToUser(username, Notification{
		Type:    NotificationTypeLeadAssigned,
		Message: fmt.Sprintf("Lead %s assigned to you", lead.CustomerName),
		Data:    lead,
	})
}
