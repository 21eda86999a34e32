// Package dummydb is an in-memory implementation of the repositories, used by
// tests and local development.
package dummydb

import (
	"sync"

	"github.com/kymoja/darasa/core/academics"
	"github.com/kymoja/darasa/core/attendance"
	"github.com/kymoja/darasa/core/fees"
	"github.com/kymoja/darasa/core/registry"
)

type (
	DB struct {
		persons *personTable
		punches *punchLog
		feeTxns *feeLog
		marks   *markLog
	}

	personTable struct {
		sync.RWMutex
		table map[string]*registry.Person
	}

	punchLog struct {
		sync.RWMutex
		log []attendance.Punch
	}

	feeLog struct {
		sync.RWMutex
		log []fees.Transaction
	}

	markLog struct {
		sync.RWMutex
		log []academics.MarkEntry
	}
)

func Open() (*DB, error) {
	db := &DB{
		persons: &personTable{table: make(map[string]*registry.Person)},
		punches: &punchLog{},
		feeTxns: &feeLog{},
		marks:   &markLog{},
	}
	return db, nil
}
