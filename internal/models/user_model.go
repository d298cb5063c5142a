package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

type Preferences struct {
	FavoriteGenres   []string `bson:"favoriteGenres,omitempty" json:"favorite_genres,omitempty"`
	Autoplay         bool     `bson:"autoplay" json:"autoplay"`
	SubtitleLanguage string   `bson:"subtitleLanguage,omitempty" json:"subtitle_language,omitempty"`
}

type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email               string             `bson:"email" json:"email"`
	Username            string             `bson:"username,omitempty" json:"username,omitempty"`
	PasswordHash        string             `bson:"passwordHash" json:"-"`
	FirstName           string             `bson:"firstName" json:"first_name"`
	LastName            string             `bson:"lastName" json:"last_name"`
	Age                 int                `bson:"age" json:"age"`
	Role                string             `bson:"role" json:"role"`
	Preferences         Preferences        `bson:"preferences" json:"preferences"`
	ResetToken          string             `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiresAt *time.Time         `bson:"resetTokenExpiresAt,omitempty" json:"-"`
	IsActive            bool               `bson:"isActive" json:"is_active"`
	CreatedAt           time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updated_at"`
}
