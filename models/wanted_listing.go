package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wanted-listing preference vocabularies
var (
	WantedPropertyTypes = []string{"Apartment", "Independent House", "PG/Hostel", "No Preference"}
	WantedRoomTypes     = []string{"Single Room", "Shared Room"}
	WantedWashroomTypes = []string{"Attached", "Private", "Sharing"}
	WantedFurnished     = []string{"Furnished", "Semi-Furnished", "Unfurnished", "No Preference"}
	WantedFoodChoices   = []string{"Vegan", "Vegetarian", "No Preference"}
)

// InList reports whether v is one of allowed
func InList(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// WantedListing is a room-wanted ad: a user describing the accommodation
// they are looking for, for owners to respond to.
type WantedListing struct {
	ID                primitive.ObjectID `json:"id" bson:"_id"`
	UserKey           string             `json:"user_key" bson:"user_key"`
	PreferredLocation string             `json:"preferred_location" bson:"preferred_location"`
	Locality          string             `json:"locality" bson:"locality"`
	City              string             `json:"city" bson:"city"`
	State             string             `json:"state" bson:"state"`
	Country           string             `json:"country" bson:"country"`
	PinCode           string             `json:"pin_code" bson:"pin_code"`
	Coordinates       Coordinates        `json:"coordinates" bson:"coordinates"`
	PropertyType      string             `json:"property_type" bson:"property_type"`
	RoomType          string             `json:"room_type" bson:"room_type"`
	WashroomType      string             `json:"washroom_type" bson:"washroom_type"`
	Furnished         string             `json:"furnished" bson:"furnished"`
	FoodChoice        string             `json:"food_choice" bson:"food_choice"`
	Profession        string             `json:"profession" bson:"profession"`
	Budget            float64            `json:"budget" bson:"budget"`
	MoveInDate        *time.Time         `json:"move_in_date" bson:"move_in_date"`
	Description       string             `json:"description" bson:"description"`
	ContactName       string             `json:"contact_name" bson:"contact_name"`
	ContactPhone      string             `json:"contact_phone" bson:"contact_phone"`
	ContactEmail      string             `json:"contact_email" bson:"contact_email"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// WantedListingReq is the create/update request for a wanted listing
type WantedListingReq struct {
	PreferredLocation string      `json:"preferred_location"`
	Locality          string      `json:"locality"`
	City              string      `json:"city"`
	State             string      `json:"state"`
	Country           string      `json:"country"`
	PinCode           string      `json:"pin_code"`
	Coordinates       Coordinates `json:"coordinates"`
	PropertyType      string      `json:"property_type"`
	RoomType          string      `json:"room_type"`
	WashroomType      string      `json:"washroom_type"`
	Furnished         string      `json:"furnished"`
	FoodChoice        string      `json:"food_choice"`
	Profession        string      `json:"profession"`
	Budget            float64     `json:"budget"`
	MoveInDate        *time.Time  `json:"move_in_date"`
	Description       string      `json:"description"`
	ContactName       string      `json:"contact_name"`
	ContactPhone      string      `json:"contact_phone"`
	ContactEmail      string      `json:"contact_email"`
}
