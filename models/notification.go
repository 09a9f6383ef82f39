package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationType ...
type NotificationType string

// Notification types
const (
	TicketN  NotificationType = "ticket"
	ListingN NotificationType = "listing"
	AccountN NotificationType = "account"
)

// Notification represents a persisted in-app notification
type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	TicketID  string             `json:"ticket_id,omitempty" bson:"ticket_id,omitempty"`
	ListingID string             `json:"listing_id,omitempty" bson:"listing_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Type      NotificationType   `json:"type" bson:"type"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
