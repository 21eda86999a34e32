package sqlxrepos

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/fees"
)

// punchRepository

type dbPunch struct {
	ID       int64     `db:"id"`
	PersonID string    `db:"person_id"`
	Date     time.Time `db:"date"`
	Session  string    `db:"session"`
	Present  bool      `db:"present"`
}

type punchRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*punchRepository)(nil) // interface compliance check

func NewPunchRepository(db *sqlx.DB) *punchRepository {
	return &punchRepository{db: db}
}

// AppendPunches records raw observations as-is, duplicates included: the
// engine, not the store, owns deduplication.
func (repo *punchRepository) AppendPunches(ctx context.Context, punches ...attendance.Punch) error {
	if len(punches) == 0 {
		return nil
	}
	const q = `
		INSERT INTO attendance_punch (person_id, date, session, present)
		VALUES (:person_id, :date, :session, :present)`

	for _, p := range punches {
		row := dbPunch{
			PersonID: p.PersonID,
			Date:     p.Date.UTC(),
			Session:  p.Session,
			Present:  p.Present,
		}
		if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
			return errors.Wrap(err, "inserting punch")
		}
	}
	return nil
}

func (repo *punchRepository) PunchesByPerson(ctx context.Context, personID string, from, to time.Time) ([]attendance.Punch, error) {
	conds := []string{"person_id = $1"}
	args := []interface{}{personID}

	if !from.IsZero() {
		args = append(args, from)
		conds = append(conds, "date >= $"+strconv.Itoa(len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		conds = append(conds, "date <= $"+strconv.Itoa(len(args)))
	}

	q := "SELECT * FROM attendance_punch WHERE " + strings.Join(conds, " AND ")
	var rows []dbPunch
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying punches")
	}

	punches := make([]attendance.Punch, 0, len(rows))
	for _, row := range rows {
		punches = append(punches, attendance.Punch{
			PersonID: row.PersonID,
			Date:     row.Date,
			Session:  row.Session,
			Present:  row.Present,
		})
	}
	return punches, nil
}

// feeRepository

type dbFeeTransaction struct {
	ID         int64     `db:"id"`
	PersonID   string    `db:"person_id"`
	Period     string    `db:"period"`
	Kind       string    `db:"kind"`
	TotalDue   int64     `db:"total_due"`
	AmountPaid int64     `db:"amount_paid"`
	Timestamp  null.Time `db:"ts"` // NULL marks a legacy opening-balance row
}

type feeRepository struct {
	db *sqlx.DB
}

var _ fees.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *sqlx.DB) *feeRepository {
	return &feeRepository{db: db}
}

func (repo *feeRepository) AppendTransactions(ctx context.Context, txns ...fees.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	const q = `
		INSERT INTO fee_transaction (person_id, period, kind, total_due, amount_paid, ts)
		VALUES (:person_id, :period, :kind, :total_due, :amount_paid, :ts)`

	for _, tx := range txns {
		row := dbFeeTransaction{
			PersonID:   tx.PersonID,
			Period:     tx.Period,
			Kind:       tx.Kind,
			TotalDue:   tx.TotalDue,
			AmountPaid: tx.AmountPaid,
			Timestamp:  null.NewTime(tx.Timestamp.UTC(), !tx.Timestamp.IsZero()),
		}
		if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
			return errors.Wrap(err, "inserting fee transaction")
		}
	}
	return nil
}

func (repo *feeRepository) TransactionsByPerson(ctx context.Context, personID, kind string) ([]fees.Transaction, error) {
	const q = "SELECT * FROM fee_transaction WHERE person_id = $1 AND kind = $2"

	var rows []dbFeeTransaction
	if err := repo.db.SelectContext(ctx, &rows, q, personID, kind); err != nil {
		return nil, errors.Wrap(err, "querying fee transactions")
	}

	txns := make([]fees.Transaction, 0, len(rows))
	for _, row := range rows {
		tx := fees.Transaction{
			PersonID:   row.PersonID,
			Period:     row.Period,
			Kind:       row.Kind,
			TotalDue:   row.TotalDue,
			AmountPaid: row.AmountPaid,
		}
		if row.Timestamp.Valid {
			tx.Timestamp = row.Timestamp.Time
		}
		txns = append(txns, tx)
	}
	return txns, nil
}

// markRepository

type dbMarkEntry struct {
	ID          int64  `db:"id"`
	PersonID    string `db:"person_id"`
	Term        int    `db:"term"`
	SubjectCode string `db:"subject_code"`
	Internal    int    `db:"internal_score"`
	External    int    `db:"external_score"`
	Total       int    `db:"total_score"`
	Max         int    `db:"max_score"`
}

type markRepository struct {
	db *sqlx.DB
}

var _ academics.Repository = (*markRepository)(nil) // interface compliance check

func NewMarkRepository(db *sqlx.DB) *markRepository {
	return &markRepository{db: db}
}

func (repo *markRepository) AppendMarks(ctx context.Context, entries ...academics.MarkEntry) error {
	if len(entries) == 0 {
		return nil
	}
	const q = `
		INSERT INTO mark_entry (person_id, term, subject_code, internal_score, external_score, total_score, max_score)
		VALUES (:person_id, :term, :subject_code, :internal_score, :external_score, :total_score, :max_score)`

	for _, e := range entries {
		row := dbMarkEntry{
			PersonID:    e.PersonID,
			Term:        e.Term,
			SubjectCode: e.SubjectCode,
			Internal:    e.Internal,
			External:    e.External,
			Total:       e.Total,
			Max:         e.Max,
		}
		if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
			return errors.Wrap(err, "inserting mark entry")
		}
	}
	return nil
}

func (repo *markRepository) MarksByPerson(ctx context.Context, personID string, term int) ([]academics.MarkEntry, error) {
	conds := []string{"person_id = $1"}
	args := []interface{}{personID}

	if term != 0 {
		args = append(args, term)
		conds = append(conds, "term = $"+strconv.Itoa(len(args)))
	}

	q := "SELECT * FROM mark_entry WHERE " + strings.Join(conds, " AND ")
	var rows []dbMarkEntry
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying mark entries")
	}

	entries := make([]academics.MarkEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, academics.MarkEntry{
			PersonID:    row.PersonID,
			Term:        row.Term,
			SubjectCode: row.SubjectCode,
			Internal:    row.Internal,
			External:    row.External,
			Total:       row.Total,
			Max:         row.Max,
		})
	}
	return entries, nil
}
