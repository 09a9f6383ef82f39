package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing statuses
const (
	ListingActive   = "active"
	ListingInactive = "inactive"
)

// Coordinates ...
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Amenities holds the amenity toggles of a listing
type Amenities struct {
	TV             bool `json:"tv" bson:"tv"`
	Fridge         bool `json:"fridge" bson:"fridge"`
	WashingMachine bool `json:"washing_machine" bson:"washing_machine"`
	Kitchen        bool `json:"kitchen" bson:"kitchen"`
	AirConditioner bool `json:"air_conditioner" bson:"air_conditioner"`
	SwimmingPool   bool `json:"swimming_pool" bson:"swimming_pool"`
	Gym            bool `json:"gym" bson:"gym"`
}

// ListingView records a single fetch of a listing
type ListingView struct {
	Viewer    string    `json:"viewer" bson:"viewer"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Listing represents an accommodation/room ad
type Listing struct {
	ID                primitive.ObjectID `json:"id" bson:"_id"`
	Title             string             `json:"title" bson:"title"`
	AccommodationType string             `json:"accommodation_type" bson:"accommodation_type"`
	Description       string             `json:"description" bson:"description"`
	PropertyAddress   string             `json:"property_address" bson:"property_address"`
	Locality          string             `json:"locality" bson:"locality"`
	City              string             `json:"city" bson:"city"`
	State             string             `json:"state" bson:"state"`
	Country           string             `json:"country" bson:"country"`
	PinCode           string             `json:"pin_code" bson:"pin_code"`
	Coordinates       Coordinates        `json:"coordinates" bson:"coordinates"`
	PropertyStructure string             `json:"property_structure" bson:"property_structure"`
	RoomType          string             `json:"room_type" bson:"room_type"`
	WashroomType      string             `json:"washroom_type" bson:"washroom_type"`
	ParkingType       string             `json:"parking_type" bson:"parking_type"`
	RoomSize          float64            `json:"room_size" bson:"room_size"`
	Rent              float64            `json:"rent" bson:"rent"`
	Deposit           float64            `json:"deposit" bson:"deposit"`
	AvailableFrom     *time.Time         `json:"available_from" bson:"available_from"`
	Images            []string           `json:"images" bson:"images"`
	Videos            []string           `json:"videos" bson:"videos"`
	Amenities         Amenities          `json:"amenities" bson:"amenities"`
	UserKey           string             `json:"user_key" bson:"user_key"`
	UserType          string             `json:"user_type" bson:"user_type"`
	Status            string             `json:"status" bson:"status"`
	ViewsCount        int64              `json:"views_count" bson:"views_count"`
	ViewsLog          []ListingView      `json:"views_log" bson:"views_log"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// ListingReq is the create/update request for a listing
type ListingReq struct {
	Title             string      `json:"title"`
	AccommodationType string      `json:"accommodation_type"`
	Description       string      `json:"description"`
	PropertyAddress   string      `json:"property_address"`
	Locality          string      `json:"locality"`
	City              string      `json:"city"`
	State             string      `json:"state"`
	Country           string      `json:"country"`
	PinCode           string      `json:"pin_code"`
	Coordinates       Coordinates `json:"coordinates"`
	PropertyStructure string      `json:"property_structure"`
	RoomType          string      `json:"room_type"`
	WashroomType      string      `json:"washroom_type"`
	ParkingType       string      `json:"parking_type"`
	RoomSize          float64     `json:"room_size"`
	Rent              float64     `json:"rent"`
	Deposit           float64     `json:"deposit"`
	AvailableFrom     *time.Time  `json:"available_from"`
	Images            []string    `json:"images"`
	Videos            []string    `json:"videos"`
	Amenities         Amenities   `json:"amenities"`
}
