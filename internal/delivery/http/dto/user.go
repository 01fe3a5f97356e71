package dto

import (
	"time"

	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	CompanyName     *string   `json:"companyName"`
	ResumeURL       *string   `json:"resumeUrl"`
	Bio             *string   `json:"bio"`
	Location        *string   `json:"location"`
	Website         *string   `json:"website"`
	LinkedIn        *string   `json:"linkedin"`
	GitHub          *string   `json:"github"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (u UserResponse) IsRecruiter() bool { return u.Role == string(user.RoleRecruiter) }
func (u UserResponse) IsStudent() bool   { return u.Role == string(user.RoleStudent) }

func NewUserResponse(u user.User) UserResponse {
	res := UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Role:            u.Role.String(),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ResumeURL:       u.ResumeURL(),
		Bio:             u.Profile.Bio,
		Location:        u.Profile.Location,
		Website:         u.Profile.Website,
		LinkedIn:        u.Profile.LinkedIn,
		GitHub:          u.Profile.GitHub,
		ProfileImageURL: u.Profile.ProfileImageURL,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.Recruiter != nil {
		company := u.Recruiter.CompanyName
		res.CompanyName = &company
	}
	return res
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest distinguishes absent keys from explicit nulls.
type UpdateProfileRequest struct {
	FirstName       optional.Field[string] `json:"firstName,omitzero"`
	LastName        optional.Field[string] `json:"lastName,omitzero"`
	CompanyName     optional.Field[string] `json:"companyName,omitzero"`
	ResumeURL       optional.Field[string] `json:"resumeUrl,omitzero"`
	Bio             optional.Field[string] `json:"bio,omitzero"`
	Location        optional.Field[string] `json:"location,omitzero"`
	Website         optional.Field[string] `json:"website,omitzero"`
	LinkedIn        optional.Field[string] `json:"linkedin,omitzero"`
	GitHub          optional.Field[string] `json:"github,omitzero"`
	ProfileImageURL optional.Field[string] `json:"profileImageUrl,omitzero"`
}

func (r UpdateProfileRequest) ToPatch() user.ProfilePatch {
	return user.ProfilePatch{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		CompanyName:     r.CompanyName,
		ResumeURL:       r.ResumeURL,
		Bio:             r.Bio,
		Location:        r.Location,
		Website:         r.Website,
		LinkedIn:        r.LinkedIn,
		GitHub:          r.GitHub,
		ProfileImageURL: r.ProfileImageURL,
	}
}
