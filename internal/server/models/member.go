package models

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Member is owned by the identity service sharing the database; this
// service only reads it.
type Member struct {
	ID        string
	Nickname  string
	Gender    Gender
	BirthDate time.Time
	CreatedAt time.Time
}
