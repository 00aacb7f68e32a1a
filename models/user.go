package models

import "time"

// Expert is a directory record for a mentor who can be booked.
// Profile management lives in the user service; the session core only
// reads these records to confirm existence and render summaries.
type Expert struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Specialization string    `bson:"specialization,omitempty" json:"specialization,omitempty"`
	Bio            string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// Student is a directory record for a learner who books sessions.
type Student struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Level     string    `bson:"level" json:"level"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
