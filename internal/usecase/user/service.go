package user

import (
	"context"

	"job-board/internal/domain"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"
	"job-board/internal/pkg/validate"

	"github.com/google/uuid"
)

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, domain.Wrap("get user", err)
	}
	return sanitizeUser(usr), nil
}

// UpdateProfile applies p to the caller's own profile. Role and email never change.
func (s *Service) UpdateProfile(ctx context.Context, caller user.User, p user.ProfilePatch) (user.User, error) {
	p = normalizePatch(p)
	if err := validatePatch(caller, p); err != nil {
		return user.User{}, err
	}

	updated, err := s.users.UpdateProfile(ctx, caller.ID, p)
	if err != nil {
		return user.User{}, domain.Wrap("update profile", err)
	}
	return sanitizeUser(updated), nil
}

func normalizePatch(p user.ProfilePatch) user.ProfilePatch {
	p.FirstName = optional.TrimSpace(p.FirstName)
	p.LastName = optional.TrimSpace(p.LastName)
	p.CompanyName = optional.TrimSpace(p.CompanyName)
	p.ResumeURL = optional.BlankAsNull(optional.TrimSpace(p.ResumeURL))
	p.Bio = optional.BlankAsNull(p.Bio)
	p.Location = optional.BlankAsNull(optional.TrimSpace(p.Location))
	p.Website = optional.BlankAsNull(optional.TrimSpace(p.Website))
	p.LinkedIn = optional.BlankAsNull(optional.TrimSpace(p.LinkedIn))
	p.GitHub = optional.BlankAsNull(optional.TrimSpace(p.GitHub))
	p.ProfileImageURL = optional.BlankAsNull(optional.TrimSpace(p.ProfileImageURL))
	return p
}

func validatePatch(caller user.User, p user.ProfilePatch) error {
	var fields domain.Fields

	required := func(name string, f optional.Field[string], tag string) {
		if !f.IsSet() {
			return
		}
		if f.IsNull() {
			fields.Add(name, "cannot be cleared")
			return
		}
		v, _ := f.Get()
		validate.Field(&fields, name, v, tag)
	}
	nullable := func(name string, f optional.Field[string], tag string) {
		if v, ok := f.Get(); ok {
			validate.Field(&fields, name, v, tag)
		}
	}

	required("firstName", p.FirstName, "notblank,max=100")
	required("lastName", p.LastName, "notblank,max=100")

	if p.CompanyName.IsSet() {
		if caller.IsRecruiter() {
			required("companyName", p.CompanyName, "notblank,max=255")
		} else {
			fields.Add("companyName", "is only available to recruiters")
		}
	}
	if p.ResumeURL.IsSet() {
		if caller.IsStudent() {
			nullable("resumeUrl", p.ResumeURL, "url,max=500")
		} else {
			fields.Add("resumeUrl", "is only available to students")
		}
	}

	nullable("bio", p.Bio, "max=5000")
	nullable("location", p.Location, "max=255")
	nullable("website", p.Website, "url,max=500")
	nullable("linkedin", p.LinkedIn, "max=500")
	nullable("github", p.GitHub, "max=500")
	nullable("profileImageUrl", p.ProfileImageURL, "url,max=500")

	return fields.Err()
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
