package domain

import "time"

const (
	RoleStudent   = "student"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// studyYears is the programme length used to derive the completion year.
const studyYears = 4

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	RollNo       string    `json:"rollNo,omitempty"`
	CollegeName  string    `json:"collegeName,omitempty"`
	Branch       string    `json:"branch,omitempty"`
	Course       string    `json:"course,omitempty"`
	EnrollYear   *int      `json:"enrollYear,omitempty"`
	Interests    []string  `json:"interests"`
	Address      string    `json:"address,omitempty"`
	ProfilePic   string    `json:"profilePic"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CompletionYear returns EnrollYear + 4, or nil when no enrollment year is known.
func (u *User) CompletionYear() *int {
	if u.EnrollYear == nil {
		return nil
	}
	y := *u.EnrollYear + studyYears
	return &y
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// ProfileUpdate lists the fields a user may change on their own profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	Name        *string
	RollNo      *string
	CollegeName *string
	Branch      *string
	Course      *string
	EnrollYear  *int
	Address     *string
	ProfilePic  *string
}

// IsEmpty reports whether the update carries no field at all.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.RollNo == nil && p.CollegeName == nil &&
		p.Branch == nil && p.Course == nil && p.EnrollYear == nil &&
		p.Address == nil && p.ProfilePic == nil
}
