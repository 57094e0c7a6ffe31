package user

import (
	"time"

	"github.com/google/uuid"
)

// User is read-only for this service: accounts are provisioned elsewhere.
type User struct {
	id        uuid.UUID
	username  string
	email     Email
	phone     Phone
	role      Role
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(username string, email Email, phone Phone, role Role) *User {
	return &User{
		id:       uuid.New(),
		username: username,
		email:    email,
		phone:    phone,
		role:     role,
	}
}

func ReconstructUser(id uuid.UUID, username string, email Email, phone Phone, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		username:  username,
		email:     email,
		phone:     phone,
		role:      role,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() Email         { return u.email }
func (u *User) Phone() Phone         { return u.phone }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManage reports whether the actor may act on a reservation held by holderID.
// A nil holder (manual customer) is manageable by admins only.
func (a Actor) CanManage(holderID *uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return holderID != nil && *holderID == a.ID && a.ID != uuid.Nil
}
