// Package repositories persists users and sweets in MongoDB. Interfaces are
// defined here so services can be tested against in-memory fakes; the mongo
// implementations live alongside them.
package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/sweetshop/app/models"
)

// Storage-level failures the services and controllers branch on with errors.Is.
var (
	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail means the unique email index rejected an insert.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrOutOfStock means a purchase hit an item with zero quantity.
	ErrOutOfStock = errors.New("out of stock")
)

// UserRepository handles the users collection.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateEmail when the email
	// is already taken.
	Create(ctx context.Context, user *models.User) error

	// FindByEmail returns ErrNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns ErrNotFound when the id is unknown or malformed.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// UpdateRole sets the role of the user with the given email.
	UpdateRole(ctx context.Context, email, role string) error
}

// SweetFilter narrows a sweet search. Zero-valued fields impose no constraint;
// name and category are case-insensitive substring matches, prices inclusive.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// SweetPatch is a partial update: only non-nil fields are applied.
type SweetPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Image    *string
}

// SweetRepository handles the sweets collection.
type SweetRepository interface {
	Insert(ctx context.Context, sweet *models.Sweet) error

	FindByID(ctx context.Context, id string) (*models.Sweet, error)

	// Find returns every sweet matching the filter; an empty filter matches all.
	Find(ctx context.Context, filter SweetFilter) ([]models.Sweet, error)

	// Purchase atomically decrements quantity and increments sold on the item,
	// but only while quantity > 0. Returns ErrOutOfStock when the item exists
	// with zero stock and ErrNotFound when it does not exist. The conditional
	// update is a single document operation, so quantity can never go negative
	// under concurrent purchases.
	Purchase(ctx context.Context, id string) (*models.Sweet, error)

	// AddQuantity increments the stored quantity by n.
	AddQuantity(ctx context.Context, id string, n int) (*models.Sweet, error)

	// Update applies the non-nil fields of patch.
	Update(ctx context.Context, id string, patch SweetPatch) (*models.Sweet, error)

	// Delete removes the document permanently.
	Delete(ctx context.Context, id string) error
}
