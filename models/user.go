// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies which part of the portal a user belongs to.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTelecaller Role = "telecaller"
	RoleFranchise  Role = "franchise"
	RolePartner    Role = "partner"
	RoleVendor     Role = "vendor"
)

// Valid reports whether r is one of the known portal roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTelecaller, RoleFranchise, RolePartner, RoleVendor:
		return true
	}
	return false
}

// Plan is the subscription plan for franchise and vendor accounts.
type Plan string

const (
	PlanBasic Plan = "basic"
	PlanPaid  Plan = "paid"
)

// User model. Username is the short human id (T1, F1, V-40231) used for
// login and for attribution on leads and orders.
type User struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username         string             `json:"username" bson:"username"`
	Name             string             `json:"name" bson:"name"`
	Password         string             `json:"password,omitempty" bson:"password"`
	Role             Role               `json:"role" bson:"role"`
	City             string             `json:"city,omitempty" bson:"city,omitempty"`
	Phone            string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email            string             `json:"email,omitempty" bson:"email,omitempty"`
	Plan             Plan               `json:"plan,omitempty" bson:"plan,omitempty"`
	RegistrationDate string             `json:"registrationDate,omitempty" bson:"registrationDate,omitempty"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Role       Role   `json:"role"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// RegisterRequest is the body for POST /api/auth/register. Admin accounts
// cannot be self-registered.
type RegisterRequest struct {
	Role     Role   `json:"role" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
	City     string `json:"city,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AdminUserRequest is the body for admin user create/update.
type AdminUserRequest struct {
	Username         string `json:"username" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Password         string `json:"password,omitempty"`
	Role             Role   `json:"role" validate:"required"`
	City             string `json:"city,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Email            string `json:"email,omitempty"`
	Plan             Plan   `json:"plan,omitempty"`
	RegistrationDate string `json:"registrationDate,omitempty"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
