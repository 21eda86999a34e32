// Package sqlxrepos implements the repositories over PostgreSQL with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/kymoja/darasa/core/registry"
)

const pqUniqueViolation = "23505"

type dbPerson struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	Kind          string    `db:"kind"`
	Institution   string    `db:"institution"`
	Department    string    `db:"department"`
	AdmissionYear int       `db:"admission_year"`
	RollNo        string    `db:"roll_no"`
	CreatedAt     time.Time `db:"created_at"`
}

func (p dbPerson) person() registry.Person {
	return registry.Person{
		ID:   p.ID,
		Name: p.Name,
		Kind: p.Kind,
		Scope: registry.ScopeAttrs{
			Institution:   p.Institution,
			Department:    p.Department,
			AdmissionYear: p.AdmissionYear,
			RollNo:        p.RollNo,
		},
		CreatedAt: p.CreatedAt,
	}
}

type personRepository struct {
	db *sqlx.DB
}

var _ registry.Repository = (*personRepository)(nil) // interface compliance check

func NewPersonRepository(db *sqlx.DB) *personRepository {
	return &personRepository{db: db}
}

func (repo *personRepository) CreatePerson(ctx context.Context, p registry.Person) (registry.Person, error) {
	const q = `
		INSERT INTO person (id, name, kind, institution, department, admission_year, roll_no, created_at)
		VALUES (:id, :name, :kind, :institution, :department, :admission_year, :roll_no, :created_at)`

	row := dbPerson{
		ID:            p.ID,
		Name:          p.Name,
		Kind:          p.Kind,
		Institution:   p.Scope.Institution,
		Department:    p.Scope.Department,
		AdmissionYear: p.Scope.AdmissionYear,
		RollNo:        p.Scope.RollNo,
		CreatedAt:     p.CreatedAt.UTC(),
	}
	if _, err := repo.db.NamedExecContext(ctx, q, row); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			return registry.Person{}, registry.ErrIDExists
		}
		return registry.Person{}, errors.Wrap(err, "inserting person")
	}
	return p, nil
}

func (repo *personRepository) GetPersonByID(ctx context.Context, id string) (registry.Person, error) {
	var row dbPerson
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM person WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return registry.Person{}, registry.ErrNotFound
		}
		return registry.Person{}, errors.Wrap(err, "getting person")
	}
	return row.person(), nil
}

func (repo *personRepository) QueryAllPersons(ctx context.Context) ([]registry.Person, error) {
	var rows []dbPerson
	if err := repo.db.SelectContext(ctx, &rows, "SELECT * FROM person ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying persons")
	}
	return toPersons(rows), nil
}

func (repo *personRepository) FilterPersons(ctx context.Context, filter registry.QueryFilter) ([]registry.Person, error) {
	conds := []string{"true"}
	var args []interface{}

	add := func(column string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, column+" = $"+strconv.Itoa(len(args)))
	}
	if filter.Institution != "" {
		add("institution", filter.Institution)
	}
	if filter.Department != "" {
		add("department", filter.Department)
	}
	if filter.AdmissionYear != 0 {
		add("admission_year", filter.AdmissionYear)
	}
	if filter.RollNo != "" {
		add("roll_no", filter.RollNo)
	}

	q := "SELECT * FROM person WHERE " + strings.Join(conds, " AND ") + " ORDER BY id"
	var rows []dbPerson
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering persons")
	}
	return toPersons(rows), nil
}

func toPersons(rows []dbPerson) []registry.Person {
	persons := make([]registry.Person, 0, len(rows))
	for _, row := range rows {
		persons = append(persons, row.person())
	}
	return persons
}
