package store

import (
	"testing"

	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/store/storetest"
)

// TestSQLiteStore runs all store tests against a private in-memory SQLite database per test
func TestSQLiteStore(t *testing.T) {
	RunStoreTests(t,
		func(t *testing.T) Store {
			return NewPGStore(storetest.NewSQLiteDB(t))
		},
		func(t *testing.T) {
			// Each database is closed by the t.Cleanup registered in NewSQLiteDB
		},
	)
}
