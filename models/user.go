package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types
const (
	UserIndividual    = "Individual"
	UserPropertyAgent = "Property Agent"
)

// User represents a marketplace user
type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Mobile     string             `json:"mobile" bson:"mobile"`
	Password   string             `json:"-" bson:"password"`
	UserType   string             `json:"user_type" bson:"user_type"`
	Bio        string             `json:"bio" bson:"bio"`
	Location   string             `json:"location" bson:"location"`
	Profession string             `json:"profession" bson:"profession"`
	Languages  string             `json:"languages" bson:"languages"`
	FCMToken   string             `json:"fcm_token" bson:"fcm_token"`
	Confirmed  bool               `json:"confirmed" bson:"confirmed"`
	PassCode   int                `json:"-" bson:"pass_code"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateUserReq represents the request model for signup
type CreateUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
	Location string `json:"location"`
}

// LoginReq represents the login request. Username matches either the
// account email or mobile number.
type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileReq carries the editable profile fields. Empty fields are
// left unchanged; identity and credential fields are not editable here.
type UpdateProfileReq struct {
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	Location   string `json:"location"`
	Profession string `json:"profession"`
	Languages  string `json:"languages"`
	UserType   string `json:"user_type"`
	Mobile     string `json:"mobile"`
}

// ConfirmAccountReq represents a confirm account request
type ConfirmAccountReq struct {
	Email string `json:"email"`
	Code  int    `json:"code"`
}

// FCMTokenReq ...
type FCMTokenReq struct {
	Token string `json:"token"`
}
