package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. New registrations always start as RoleUser;
// promotion to RoleAdmin happens through the CLI, never over HTTP.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an identity record in the `users` collection.
// The email carries a unique index; Password holds the bcrypt digest and is
// never serialised to clients.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"`
	Role      string             `bson:"role"          json:"role"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}
