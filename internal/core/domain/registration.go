package domain

import "time"

// Registration records a participant signing up for an event. Registrations
// are write-once: never mutated, never deleted.
type Registration struct {
	ID               string    `json:"id" bson:"_id,omitempty"`
	EventID          string    `json:"event_id" bson:"event_id"`
	UserID           string    `json:"user_id" bson:"user_id"`
	Name             string    `json:"name" bson:"name"`
	Email            string    `json:"email" bson:"email"`
	Phone            string    `json:"phone" bson:"phone"`
	CollegeOrCompany string    `json:"college_or_company" bson:"college_or_company"`
	YearOfStudy      string    `json:"year_of_study" bson:"year_of_study"`
	TeamMembers      string    `json:"team_members,omitempty" bson:"team_members,omitempty"`
	RegisteredAt     time.Time `json:"registered_at" bson:"registered_at"`
}

// RegistrationRow is a registration joined to the event it targets. Rows are
// only produced when the event exists in the merged catalog.
type RegistrationRow struct {
	Registration Registration `json:"registration"`
	Event        Event        `json:"event"`
}
