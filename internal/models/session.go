package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a form value to a Role. Anything but "admin" logs in as a
// customer.
func ParseRole(value string) Role {
	if Role(value) == RoleAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// Session is a server-side record of an issued session token. Only the
// token hash is stored.
type Session struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PrincipalID primitive.ObjectID `bson:"principalId" json:"principalId"`
	Role        Role               `bson:"role" json:"role"`
	TokenHash   string             `bson:"tokenHash" json:"-"`
	ExpiresAt   time.Time          `bson:"expiresAt" json:"expiresAt"`
	Revoked     bool               `bson:"revoked" json:"revoked"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Principal is the authenticated caller, either a customer or an admin.
type Principal struct {
	ID    primitive.ObjectID `json:"id"`
	Email string             `json:"email"`
	Name  string             `json:"name"`
	Role  Role               `json:"role"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
