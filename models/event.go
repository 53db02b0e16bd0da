package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses. Rejection is a hard delete, so it never appears here.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Categories accepted on submission. Empty string means "uncategorized".
var Categories = []string{
	"Koncert",
	"Sport/Turistika",
	"Pro děti",
	"Divadlo",
	"Kino",
	"Výstavy",
	"Přednášky",
	"Slavnosti",
	"Ostatní",
}

// Coordinates struct for latitude and longitude.
// (0,0) means the location has not been resolved to a real place yet.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// IsZero reports whether the coordinates are still at the unresolved origin.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

type Event struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	HostID            *primitive.ObjectID `bson:"host_id,omitempty" json:"host_id,omitempty"` // absent for anonymous submissions
	Title             string              `bson:"title" json:"title"`
	Category          string              `bson:"category,omitempty" json:"category,omitempty"`
	StartDate         string              `bson:"start_date" json:"startDate"`                 // YYYY-MM-DD, local calendar date
	EndDate           string              `bson:"end_date,omitempty" json:"endDate,omitempty"` // YYYY-MM-DD; empty means same as StartDate
	Start             string              `bson:"start,omitempty" json:"start,omitempty"`      // HH:mm
	End               string              `bson:"end,omitempty" json:"end,omitempty"`          // HH:mm, must be after Start
	Location          string              `bson:"location" json:"location"`
	Coordinates       Coordinates         `bson:"coordinates" json:"coordinates"`
	Price             string              `bson:"price,omitempty" json:"price,omitempty"` // empty/zero means free or voluntary
	Organizer         string              `bson:"organizer,omitempty" json:"organizer,omitempty"`
	FacebookURL       string              `bson:"facebook_url,omitempty" json:"facebookUrl,omitempty"`
	PosterURL         string              `bson:"poster_url,omitempty" json:"posterUrl,omitempty"`
	PosterPath        string              `bson:"poster_path,omitempty" json:"posterPath,omitempty"`
	ResizedPosterPath string              `bson:"resized_poster_path,omitempty" json:"resizedPosterPath,omitempty"`
	Status            string              `bson:"status" json:"status"` // pending, approved
	CreatedAt         time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `bson:"updated_at" json:"updated_at"`
}

// EffectiveEndDate returns EndDate, or StartDate when no end was given.
func (e *Event) EffectiveEndDate() string {
	if e.EndDate == "" {
		return e.StartDate
	}
	return e.EndDate
}

// IsValidCategory reports whether cat is one of the accepted categories.
// Empty is allowed and means "uncategorized".
func IsValidCategory(cat string) bool {
	if cat == "" {
		return true
	}
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
