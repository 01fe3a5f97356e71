package user

import (
	"context"
	"errors"
	"testing"

	"job-board/internal/domain"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/optional"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	u       user.User
	patched *user.ProfilePatch
}

func (m *mockUserRepo) Create(context.Context, user.User) error { return nil }
func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	if id != m.u.ID {
		return user.User{}, user.ErrNotFound
	}
	return m.u, nil
}
func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}
func (m *mockUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, p user.ProfilePatch) (user.User, error) {
	if id != m.u.ID {
		return user.User{}, user.ErrNotFound
	}
	m.patched = &p
	if v, ok := p.FirstName.Get(); ok {
		m.u.FirstName = v
	}
	if p.Bio.IsSet() {
		m.u.Profile.Bio = p.Bio.Ptr()
	}
	return m.u, nil
}

func TestService_GetMe(t *testing.T) {
	u := user.NewStudent(uuid.New(), "s@example.com", "hash", "Sam", "Student")
	svc := NewService(&mockUserRepo{u: u})

	got, err := svc.GetMe(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash leaked")
	}

	_, err = svc.GetMe(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_UpdateProfile_BlankClearsNullable(t *testing.T) {
	u := user.NewStudent(uuid.New(), "s@example.com", "hash", "Sam", "Student")
	repo := &mockUserRepo{u: u}
	svc := NewService(repo)

	got, err := svc.UpdateProfile(context.Background(), u, user.ProfilePatch{
		FirstName: optional.Of("  Samantha "),
		Bio:       optional.Of("   "),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.FirstName != "Samantha" {
		t.Fatalf("expected trimmed first name, got %q", got.FirstName)
	}
	if !repo.patched.Bio.IsNull() {
		t.Fatalf("expected blank bio to become null")
	}
	if repo.patched.LastName.IsSet() {
		t.Fatalf("absent field must stay absent")
	}
}

func TestService_UpdateProfile_RoleSpecificFields(t *testing.T) {
	student := user.NewStudent(uuid.New(), "s@example.com", "hash", "Sam", "Student")
	recruiter := user.NewRecruiter(uuid.New(), "r@example.com", "hash", "Rita", "Recruiter", "Acme")

	cases := []struct {
		name   string
		caller user.User
		patch  user.ProfilePatch
		field  string
	}{
		{"student company", student, user.ProfilePatch{CompanyName: optional.Of("Acme")}, "companyName"},
		{"recruiter resume", recruiter, user.ProfilePatch{ResumeURL: optional.Of("https://cv.example.com")}, "resumeUrl"},
		{"recruiter clears company", recruiter, user.ProfilePatch{CompanyName: optional.Null[string]()}, "companyName"},
		{"clear first name", student, user.ProfilePatch{FirstName: optional.Null[string]()}, "firstName"},
		{"bad website", student, user.ProfilePatch{Website: optional.Of("not a url")}, "website"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&mockUserRepo{u: tc.caller})
			_, err := svc.UpdateProfile(context.Background(), tc.caller, tc.patch)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(ve.Fields) == 0 || ve.Fields[0].Field != tc.field {
				t.Fatalf("expected %s field error, got %+v", tc.field, ve.Fields)
			}
		})
	}
}

func TestService_UpdateProfile_StudentResume(t *testing.T) {
	student := user.NewStudent(uuid.New(), "s@example.com", "hash", "Sam", "Student")
	repo := &mockUserRepo{u: student}
	svc := NewService(repo)

	_, err := svc.UpdateProfile(context.Background(), student, user.ProfilePatch{ResumeURL: optional.Of(" https://cv.example.com/sam.pdf ")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v, _ := repo.patched.ResumeURL.Get(); v != "https://cv.example.com/sam.pdf" {
		t.Fatalf("expected trimmed resume URL, got %q", v)
	}
}
