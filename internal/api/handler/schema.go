package handler

import (
	"github.com/campusevents/event-platform/internal/core/domain"
	"github.com/campusevents/event-platform/internal/core/ports"
)

type registerRequest struct {
	Name        string   `json:"name"        validate:"required,notblank"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required"`
	Role        string   `json:"role"        validate:"omitempty,oneof=student organizer admin"`
	RollNo      string   `json:"rollNo"`
	CollegeName string   `json:"collegeName"`
	Branch      string   `json:"branch"`
	Course      string   `json:"course"`
	Interests   []string `json:"interests"`
	EnrollYear  *int     `json:"enrollYear"  validate:"omitempty,gt=0"`
	Address     string   `json:"address"`
	ProfilePic  string   `json:"profilePic"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		Role:        r.Role,
		RollNo:      r.RollNo,
		CollegeName: r.CollegeName,
		Branch:      r.Branch,
		Course:      r.Course,
		Interests:   r.Interests,
		EnrollYear:  r.EnrollYear,
		Address:     r.Address,
		ProfilePic:  r.ProfilePic,
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// createEventRequest keeps Date as a string so both RFC 3339 timestamps and
// plain YYYY-MM-DD dates are accepted.
type createEventRequest struct {
	Title       string `json:"title"       validate:"required,notblank"`
	Description string `json:"description" validate:"required,notblank"`
	Category    string `json:"category"    validate:"required,notblank"`
	Date        string `json:"date"        validate:"required"`
	Venue       string `json:"venue"       validate:"required,notblank"`
	Capacity    *int   `json:"capacity"    validate:"required,gte=0"`
}

type updateInterestsRequest struct {
	Interests []string `json:"interests"`
}

// updateProfileRequest is the allow-list of self-editable profile fields.
// Anything else in the body is dropped by the JSON decoder.
type updateProfileRequest struct {
	Name        *string `json:"name"`
	RollNo      *string `json:"rollNo"`
	CollegeName *string `json:"collegeName"`
	Branch      *string `json:"branch"`
	Course      *string `json:"course"`
	EnrollYear  *int    `json:"enrollYear"  validate:"omitempty,gt=0"`
	Address     *string `json:"address"`
	ProfilePic  *string `json:"profilePic"`
}

func (r updateProfileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:        r.Name,
		RollNo:      r.RollNo,
		CollegeName: r.CollegeName,
		Branch:      r.Branch,
		Course:      r.Course,
		EnrollYear:  r.EnrollYear,
		Address:     r.Address,
		ProfilePic:  r.ProfilePic,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
