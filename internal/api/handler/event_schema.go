package handler

import "github.com/ArnavTheExploit/EventSphere/internal/core/domain"

type eventRequest struct {
	Title            string `json:"title"             validate:"required"`
	Category         string `json:"category"          validate:"required"`
	Date             string `json:"date"              validate:"required"`
	Time             string `json:"time"              validate:"required"`
	Location         string `json:"location"          validate:"required"`
	OrganizerName    string `json:"organizer_name"    validate:"required"`
	OrganizerContact string `json:"organizer_contact" validate:"required,email"`
	Description      string `json:"description"       validate:"required"`
	AboutEvent       string `json:"about_event"`
	Rules            string `json:"rules"`
	Prizes           string `json:"prizes"`
	ImageURL         string `json:"image_url"`
	PosterURL        string `json:"poster_url"`
	BrochureURL      string `json:"brochure_url"`
	RegistrationFee  string `json:"registration_fee"`
	TeamSize         string `json:"team_size"`
}

func (r eventRequest) toEvent(id, createdByUID string) domain.Event {
	return domain.Event{
		ID:               id,
		Title:            r.Title,
		Category:         domain.Category(r.Category),
		Date:             r.Date,
		Time:             r.Time,
		Location:         r.Location,
		OrganizerName:    r.OrganizerName,
		OrganizerContact: r.OrganizerContact,
		Description:      r.Description,
		AboutEvent:       r.AboutEvent,
		Rules:            r.Rules,
		Prizes:           r.Prizes,
		ImageURL:         r.ImageURL,
		PosterURL:        r.PosterURL,
		BrochureURL:      r.BrochureURL,
		RegistrationFee:  r.RegistrationFee,
		TeamSize:         r.TeamSize,
		CreatedByUID:     createdByUID,
	}
}

type eventListResponse struct {
	Events []domain.Event `json:"events"`
	Count  int            `json:"count"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

type removedResponse struct {
	Message string `json:"message"`
}
