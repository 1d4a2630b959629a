package domain

// Category classifies an event. The set is closed: the catalog UI and the
// seed data only ever use these six values.
type Category string

const (
	CategoryHackathons      Category = "Hackathons"
	CategoryArtCompetitions Category = "Art Competitions"
	CategoryDanceMusic      Category = "Dance & Music"
	CategoryCultural        Category = "Cultural Events"
	CategoryTech            Category = "Tech Events"
	CategoryWorkshops       Category = "Workshops"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryHackathons,
		CategoryArtCompetitions,
		CategoryDanceMusic,
		CategoryCultural,
		CategoryTech,
		CategoryWorkshops,
	}
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Event is a catalog entry. ID is unique across the merged view; a remote
// record always overrides a seed record sharing its ID.
type Event struct {
	ID               string   `json:"id" bson:"_id"`
	Title            string   `json:"title" bson:"title"`
	Category         Category `json:"category" bson:"category"`
	Date             string   `json:"date" bson:"date"`
	Time             string   `json:"time" bson:"time"`
	Location         string   `json:"location" bson:"location"`
	OrganizerName    string   `json:"organizer_name" bson:"organizer_name"`
	OrganizerContact string   `json:"organizer_contact" bson:"organizer_contact"`
	Description      string   `json:"description" bson:"description"`
	AboutEvent       string   `json:"about_event,omitempty" bson:"about_event,omitempty"`
	Rules            string   `json:"rules,omitempty" bson:"rules,omitempty"`
	Prizes           string   `json:"prizes,omitempty" bson:"prizes,omitempty"`
	ImageURL         string   `json:"image_url,omitempty" bson:"image_url,omitempty"`
	PosterURL        string   `json:"poster_url,omitempty" bson:"poster_url,omitempty"`
	BrochureURL      string   `json:"brochure_url,omitempty" bson:"brochure_url,omitempty"`
	RegistrationFee  string   `json:"registration_fee,omitempty" bson:"registration_fee,omitempty"`
	TeamSize         string   `json:"team_size,omitempty" bson:"team_size,omitempty"`
	CreatedByUID     string   `json:"created_by_uid" bson:"created_by_uid"`
}

// OwnedBy reports whether the event was created by the given identity.
func (e Event) OwnedBy(identityID string) bool {
	return e.CreatedByUID == identityID
}
