package attendance

import (
	"context"
	"time"
)

type (
	Repository interface {
		// PunchesByPerson returns all punches for the person, optionally
		// restricted to [from, to] (zero times do not restrict).
		PunchesByPerson(ctx context.Context, personID string, from, to time.Time) ([]Punch, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary computes the attendance summary for one person over a date range.
func (svc *Service) Summary(ctx context.Context, personID string, from, to time.Time) (Summary, error) {
	punches, err := svc.repo.PunchesByPerson(ctx, personID, from, to)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(punches), nil
}
