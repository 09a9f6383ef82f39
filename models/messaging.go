package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DirectMessage is a user-to-user message about a listing
type DirectMessage struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	SenderID       string             `json:"sender_id" bson:"sender_id"`
	ReceiverID     string             `json:"receiver_id" bson:"receiver_id"`
	ListingAddress string             `json:"listing_address" bson:"listing_address"`
	Content        string             `json:"content" bson:"content"`
	IsRead         bool               `json:"is_read" bson:"is_read"`
	ReplyToID      string             `json:"reply_to_message_id" bson:"reply_to_message_id"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

// NewDirectMessageReq ...
type NewDirectMessageReq struct {
	ReceiverID     string `json:"receiver_id"`
	ListingAddress string `json:"listing_address"`
	Content        string `json:"content"`
	ReplyToID      string `json:"reply_to_message_id"`
}
