package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleMember  UserRole = "member"
)

// User carries its password hash for persistence only; the hash never
// leaves the service in JSON form.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	LoginID      string              `bson:"login_id" json:"login_id"`
	Email        string              `bson:"email,omitempty" json:"-"`
	Name         string              `bson:"name" json:"name"`
	Role         UserRole            `bson:"role" json:"role"`
	DepartmentID *primitive.ObjectID `bson:"department_id,omitempty" json:"department_id,omitempty"`
	Department   string              `bson:"department,omitempty" json:"department,omitempty"`
	Title        string              `bson:"title,omitempty" json:"title,omitempty"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarURL    string              `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsActive     bool                `bson:"is_active" json:"is_active"`
	Timezone     string              `bson:"timezone,omitempty" json:"timezone,omitempty"`
	PasswordHash string              `bson:"password_hash,omitempty" json:"-"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
	CreatedBy    string              `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy    string              `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// Login returns the effective login identifier. Legacy records predate the
// login_id field and carry only an email.
func (u *User) Login() string {
	if u.LoginID != "" {
		return u.LoginID
	}
	return u.Email
}
