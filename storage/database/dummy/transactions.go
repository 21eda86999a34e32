package dummydb

import (
	"context"
	"time"

	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/fees"
)

// punchRepository

type punchRepository struct {
	db *punchLog
}

var _ attendance.Repository = (*punchRepository)(nil) // interface compliance check

func NewPunchRepository(db *DB) *punchRepository {
	return &punchRepository{db: db.punches}
}

// AppendPunches appends raw observations to the log, duplicates included: the
// engine, not the store, owns deduplication.
func (repo *punchRepository) AppendPunches(punches ...attendance.Punch) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.log = append(repo.db.log, punches...)
}

func (repo *punchRepository) PunchesByPerson(ctx context.Context, personID string, from, to time.Time) ([]attendance.Punch, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var punches []attendance.Punch
	for _, p := range repo.db.log {
		if p.PersonID != personID {
			continue
		}
		if !from.IsZero() && p.Date.Before(from) {
			continue
		}
		if !to.IsZero() && p.Date.After(to) {
			continue
		}
		punches = append(punches, p)
	}
	return punches, nil
}

// feeRepository

type feeRepository struct {
	db *feeLog
}

var _ fees.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *DB) *feeRepository {
	return &feeRepository{db: db.feeTxns}
}

func (repo *feeRepository) AppendTransactions(txns ...fees.Transaction) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.log = append(repo.db.log, txns...)
}

func (repo *feeRepository) TransactionsByPerson(ctx context.Context, personID, kind string) ([]fees.Transaction, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var txns []fees.Transaction
	for _, tx := range repo.db.log {
		if tx.PersonID == personID && tx.Kind == kind {
			txns = append(txns, tx)
		}
	}
	return txns, nil
}

// markRepository

type markRepository struct {
	db *markLog
}

var _ academics.Repository = (*markRepository)(nil) // interface compliance check

func NewMarkRepository(db *DB) *markRepository {
	return &markRepository{db: db.marks}
}

func (repo *markRepository) AppendMarks(entries ...academics.MarkEntry) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.log = append(repo.db.log, entries...)
}

func (repo *markRepository) MarksByPerson(ctx context.Context, personID string, term int) ([]academics.MarkEntry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var entries []academics.MarkEntry
	for _, e := range repo.db.log {
		if e.PersonID != personID {
			continue
		}
		if term != 0 && e.Term != term {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
