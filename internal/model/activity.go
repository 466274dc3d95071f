package model

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an extracurricular activity students can sign up for.
// The API addresses activities by Name, so names are unique.
type Activity struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Schedule        string    `json:"schedule"`
	MaxParticipants int       `json:"max_participants"`
	Participants    []string  `json:"participants"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewActivity(name, description, schedule string, maxParticipants int) *Activity {
	now := time.Now()
	return &Activity{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
		Participants:    []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasParticipant reports whether email is already on the roster.
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// IsFull reports whether the roster reached MaxParticipants.
// A non-positive MaxParticipants means unlimited.
func (a *Activity) IsFull() bool {
	return a.MaxParticipants > 0 && len(a.Participants) >= a.MaxParticipants
}
