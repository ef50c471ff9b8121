package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid marks input rejected by the validation boundary. The HTTP layer
// and request schema are expected to have validated already; this is the
// defensive check behind them.
var ErrInvalid = errors.New("invalid contact data")

// Service exposes contact operations over a repository, guarding them with
// payload validation.
type Service struct {
	repo     Repository
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds a contact service instance.
func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// WithClock replaces the time source used for birthday windows. For tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates the input and inserts a new contact.
func (s *Service) Create(ctx context.Context, in CreateInput) (Contact, error) {
	if err := s.validate.Struct(in); err != nil {
		return Contact{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if in.Birthday.IsZero() {
		return Contact{}, fmt.Errorf("%w: birthday is required", ErrInvalid)
	}
	return s.repo.Create(ctx, Contact{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		Birthday:       in.Birthday,
		AdditionalInfo: in.AdditionalInfo,
	})
}

// Get fetches a single contact.
func (s *Service) Get(ctx context.Context, id int64) (Contact, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns a page of contacts ordered by id.
func (s *Service) List(ctx context.Context, skip, limit int) ([]Contact, error) {
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: skip and limit must be non-negative", ErrInvalid)
	}
	return s.repo.List(ctx, skip, limit)
}

// Update applies a partial mutation. Fields absent from u keep their prior
// values; fields present overwrite, including clearing to the zero value.
func (s *Service) Update(ctx context.Context, id int64, u Update) (Contact, error) {
	if u.Email != nil {
		if err := s.validate.Var(*u.Email, "required,email"); err != nil {
			return Contact{}, fmt.Errorf("%w: malformed email", ErrInvalid)
		}
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes a contact, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Search matches the query against first name, last name and email. No
// minimum query length is enforced; short queries may match broadly.
func (s *Service) Search(ctx context.Context, query string) ([]Contact, error) {
	return s.repo.SearchByText(ctx, query)
}

// UpcomingBirthdays lists contacts with a birthday in the next eight days,
// today inclusive.
func (s *Service) UpcomingBirthdays(ctx context.Context) ([]Contact, error) {
	return s.repo.UpcomingBirthdays(ctx, s.now())
}
