package repomanager

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAccounts_ReturnsBoundRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	m := NewPostgresRepositoryManager()
	if repo := m.Accounts(db); repo == nil {
		t.Fatalf("Accounts returned nil repository")
	}
}
