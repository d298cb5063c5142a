package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CastMember struct {
	Name      string `bson:"name" json:"name"`
	Character string `bson:"character,omitempty" json:"character,omitempty"`
}

type Media struct {
	VideoKey   string `bson:"videoKey,omitempty" json:"-"`
	TrailerKey string `bson:"trailerKey,omitempty" json:"-"`
	PosterURL  string `bson:"posterUrl,omitempty" json:"poster_url,omitempty"`
	Format     string `bson:"format,omitempty" json:"format,omitempty"`
	Width      int    `bson:"width,omitempty" json:"width,omitempty"`
	Height     int    `bson:"height,omitempty" json:"height,omitempty"`
}

// RatingStats is the denormalized snapshot kept on the movie document so
// list/detail reads never touch the ratings collection.
type RatingStats struct {
	Average      float64          `bson:"average" json:"average"`
	Count        int64            `bson:"count" json:"count"`
	Distribution map[string]int64 `bson:"distribution" json:"distribution"`
}

// ZeroRatingStats is the snapshot for a movie with no active ratings.
func ZeroRatingStats() RatingStats {
	return RatingStats{
		Average:      0,
		Count:        0,
		Distribution: map[string]int64{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}
}

type Movie struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Synopsis        string             `bson:"synopsis,omitempty" json:"synopsis,omitempty"`
	ReleaseDate     time.Time          `bson:"releaseDate" json:"release_date"`
	DurationMinutes int                `bson:"durationMinutes" json:"duration_minutes"`
	Genres          []string           `bson:"genres" json:"genres"`
	Cast            []CastMember       `bson:"cast,omitempty" json:"cast,omitempty"`
	Media           Media              `bson:"media" json:"media"`
	RatingStats     RatingStats        `bson:"ratingStats" json:"rating_stats"`
	ViewCount       int64              `bson:"viewCount" json:"view_count"`
	IsActive        bool               `bson:"isActive" json:"is_active"`
	CreatedBy       primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}
