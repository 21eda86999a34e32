package dummydb

import (
	"context"
	"sort"

	"github.com/kymoja/darasa/core/registry"
)

type personRepository struct {
	db *personTable
}

var _ registry.Repository = (*personRepository)(nil) // interface compliance check

func NewPersonRepository(db *DB) registry.Repository {
	return &personRepository{db: db.persons}
}

func (repo *personRepository) query() []registry.Person {
	persons := make([]registry.Person, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		persons = append(persons, *p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons
}

func (repo *personRepository) CreatePerson(ctx context.Context, p registry.Person) (registry.Person, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, exists := repo.db.table[p.ID]; exists {
		return registry.Person{}, registry.ErrIDExists
	}
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *personRepository) GetPersonByID(ctx context.Context, id string) (registry.Person, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return registry.Person{}, registry.ErrNotFound
}

func (repo *personRepository) QueryAllPersons(ctx context.Context) ([]registry.Person, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *personRepository) FilterPersons(ctx context.Context, filter registry.QueryFilter) ([]registry.Person, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var persons []registry.Person
	for _, p := range repo.query() {
		if filter.Matches(p) {
			persons = append(persons, p)
		}
	}
	return persons, nil
}
