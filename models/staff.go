package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles relevant to ticket triage. Role is free text; other
// departments carry their own labels.
const (
	RoleCustomerServiceLead = "Customer Service Lead"
	RoleCustomerService     = "Customer Service"
)

// TriageRoles are the roles a ticket may be assigned to
var TriageRoles = []string{RoleCustomerServiceLead, RoleCustomerService}

// IsTriageRole reports whether role may handle tickets
func IsTriageRole(role string) bool {
	for _, r := range TriageRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Staff represents a staff account
type Staff struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Password   string             `json:"-" bson:"password"`
	Role       string             `json:"role" bson:"role"`
	Department string             `json:"department" bson:"department"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateStaffReq represents the request model for staff registration
type CreateStaffReq struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// StaffLoginReq represents the staff login request
type StaffLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRoleReq ...
type UpdateRoleReq struct {
	Role string `json:"role"`
}
