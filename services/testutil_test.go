package services

import (
	"testing"

	"github.com/upb/cafe-directory/repositories"
	"github.com/upb/cafe-directory/repositories/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testRepos bundles an in-memory store with all repositories
type testRepos struct {
	db       *gorm.DB
	cafes    repositories.CafeRepository
	users    repositories.UserRepository
	messages repositories.MessageRepository
	sessions repositories.SessionRepository
}

// newTestRepos creates an isolated in-memory SQLite database with the
// full schema migrated
func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	logger := zap.NewNop()
	db, err := sqlite.Open(":memory:", logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	return &testRepos{
		db:       db,
		cafes:    sqlite.NewCafeRepository(db, logger),
		users:    sqlite.NewUserRepository(db, logger),
		messages: sqlite.NewMessageRepository(db, logger),
		sessions: sqlite.NewSessionRepository(db, logger),
	}
}
