package academics

import (
	"context"

	"github.com/kymoja/darasa/core"
)

type (
	Repository interface {
		// MarksByPerson returns the person's mark entries, optionally
		// restricted to one term (0 does not restrict).
		MarksByPerson(ctx context.Context, personID string, term int) ([]MarkEntry, error)
	}

	Service struct {
		repo Repository
		th   core.PassThresholds
	}
)

func NewService(repo Repository, th core.PassThresholds) *Service {
	return &Service{repo: repo, th: th}
}

// Summary evaluates the person's filtered mark entries.
func (svc *Service) Summary(ctx context.Context, personID string, term int) (Summary, error) {
	entries, err := svc.repo.MarksByPerson(ctx, personID, term)
	if err != nil {
		return Summary{}, err
	}
	return Evaluate(entries, svc.th), nil
}
