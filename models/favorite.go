package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite marks a listing saved by a user. A user can favorite a listing
// only once, enforced by a unique compound index.
type Favorite struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    string             `json:"user_id" bson:"user_id"`
	ListingID primitive.ObjectID `json:"listing_id" bson:"listing_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// FavoriteReq ...
type FavoriteReq struct {
	ListingID string `json:"listing_id"`
}
