package fees

import "context"

type (
	Repository interface {
		// TransactionsByPerson returns all transactions of the given kind for
		// the person, in no particular order.
		TransactionsByPerson(ctx context.Context, personID, kind string) ([]Transaction, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ledger reconciles the person's transactions of one kind into display rows.
// The schedule only applies to tuition; pass a zero Schedule for exam fees.
func (svc *Service) Ledger(ctx context.Context, personID, kind string, schedule Schedule) ([]LedgerRow, Meta, error) {
	txns, err := svc.repo.TransactionsByPerson(ctx, personID, kind)
	if err != nil {
		return nil, Meta{}, err
	}
	rows, meta := Reconcile(txns, schedule)
	return rows, meta, nil
}
