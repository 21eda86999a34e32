package registry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("person not found")
	ErrIDExists = errors.New("a person with this ID already exists")
)

type (
	Repository interface {
		CreatePerson(ctx context.Context, p Person) (Person, error)
		GetPersonByID(ctx context.Context, id string) (Person, error)
		QueryAllPersons(ctx context.Context) ([]Person, error)
		// FilterPersons applies AND operation on available QueryFilter fields.
		FilterPersons(ctx context.Context, filter QueryFilter) ([]Person, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new Person. Students get the structured scope-encoding ID;
// faculty and staff get an opaque uuid.
func (svc *Service) Create(ctx context.Context, np NewPerson) (Person, error) {
	p := Person{
		Name: np.Name,
		Kind: np.Kind,
		Scope: ScopeAttrs{
			Institution:   np.Institution,
			Department:    np.Department,
			AdmissionYear: np.AdmissionYear,
		},
		CreatedAt: time.Now().UTC(),
	}
	if np.Kind == KindStudent {
		p.ID = StudentID(np.Institution, np.Department, np.AdmissionYear, np.Seq)
		p.Scope.RollNo = p.ID[len(p.ID)-3:]
	} else {
		p.ID = uuid.New().String()
	}
	return svc.repo.CreatePerson(ctx, p)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Person, error) {
	return svc.repo.GetPersonByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Person, error) {
	return svc.repo.QueryAllPersons(ctx)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Person, error) {
	filter.Clean()
	return svc.repo.FilterPersons(ctx, filter)
}
