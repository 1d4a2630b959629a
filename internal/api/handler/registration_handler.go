package handler

import (
	"encoding/csv"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ArnavTheExploit/EventSphere/internal/core/ports"
)

// RegistrationDispatcher is the interface the handler uses to enqueue
// submissions.
type RegistrationDispatcher interface {
	Enqueue(in ports.RegistrationInput)
}

// RegistrationHandler accepts participant submissions and serves the
// organizer's joined registrant view.
type RegistrationHandler struct {
	dispatcher RegistrationDispatcher
	feed       ports.RegistrationFeed
}

func NewRegistrationHandler(dispatcher RegistrationDispatcher, feed ports.RegistrationFeed) *RegistrationHandler {
	return &RegistrationHandler{dispatcher: dispatcher, feed: feed}
}

type registrationRequest struct {
	EventID          string `json:"event_id"           validate:"required"`
	Name             string `json:"name"               validate:"required"`
	Email            string `json:"email"              validate:"required,email"`
	Phone            string `json:"phone"              validate:"required"`
	CollegeOrCompany string `json:"college_or_company" validate:"required"`
	YearOfStudy      string `json:"year_of_study"      validate:"required"`
	TeamMembers      string `json:"team_members"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}

type registrantListResponse struct {
	Registrations []registrantRow `json:"registrations"`
	Count         int             `json:"count"`
}

type registrantRow struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	CollegeOrCompany string `json:"college_or_company"`
	YearOfStudy      string `json:"year_of_study"`
	EventID          string `json:"event_id"`
	EventTitle       string `json:"event_title"`
	TeamMembers      string `json:"team_members,omitempty"`
}

// Submit handles POST /v1/registrations: enqueues a submission, returns 202.
//
// @Summary      Register for an event
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registrationRequest  true  "Registration form"
// @Success      202   {object}  acceptedResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/registrations [post]
func (h *RegistrationHandler) Submit(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req registrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(ports.RegistrationInput{
		EventID:          req.EventID,
		UserID:           uid,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		CollegeOrCompany: req.CollegeOrCompany,
		YearOfStudy:      req.YearOfStudy,
		TeamMembers:      req.TeamMembers,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "registration accepted"})
}

// List returns the registrations joined to the caller's events.
//
// @Summary      List registrants for the organizer's events
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  registrantListResponse
// @Router       /v1/organizer/registrations [get]
func (h *RegistrationHandler) List(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rows, count := h.feed.ForOrganizer(uid)
	out := make([]registrantRow, 0, count)
	for _, row := range rows {
		out = append(out, registrantRow{
			ID:               row.Registration.ID,
			Name:             row.Registration.Name,
			Email:            row.Registration.Email,
			Phone:            row.Registration.Phone,
			CollegeOrCompany: row.Registration.CollegeOrCompany,
			YearOfStudy:      row.Registration.YearOfStudy,
			EventID:          row.Event.ID,
			EventTitle:       row.Event.Title,
			TeamMembers:      row.Registration.TeamMembers,
		})
	}
	return c.JSON(http.StatusOK, registrantListResponse{Registrations: out, Count: count})
}

// Export downloads the organizer's registrant list as CSV.
//
// @Summary      Export registrants as CSV
// @Tags         organizer
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string  "CSV payload"
// @Router       /v1/organizer/registrations/export [get]
func (h *RegistrationHandler) Export(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	rows, _ := h.feed.ForOrganizer(uid)

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="participants_list.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"Name", "Email", "Phone", "College/Company", "Year", "Event Title", "Team Members"}); err != nil {
		return err
	}
	for _, row := range rows {
		team := row.Registration.TeamMembers
		if team == "" {
			team = "N/A"
		}
		record := []string{
			row.Registration.Name,
			row.Registration.Email,
			row.Registration.Phone,
			row.Registration.CollegeOrCompany,
			row.Registration.YearOfStudy,
			row.Event.Title,
			team,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
