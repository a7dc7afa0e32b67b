package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/ledger-service/internal/repository"
)

// SetupDatabase creates the ledger tables and foreign keys. Safe to repeat.
func (s *Service) SetupDatabase(ctx context.Context) Result {
	if err := s.store.InitializeSchema(ctx); err != nil {
		s.log.Errorf("Database setup failed: %v", err)
		return Result{Kind: StorageFailed, Message: fmt.Sprintf("Failed to set up database. Error: %v", err)}
	}
	s.log.Info("Database setup completed")
	return Result{Kind: Success, Message: "Database setup completed."}
}

// DropDatabase drops the ledger tables
func (s *Service) DropDatabase(ctx context.Context) Result {
	if err := s.store.DropSchema(ctx); err != nil {
		s.log.Errorf("Dropping database tables failed: %v", err)
		return Result{Kind: StorageFailed, Message: fmt.Sprintf("Failed to drop database tables. Error: %v", err)}
	}
	s.log.Info("Database tables dropped")
	return Result{Kind: Success, Message: "Database tables dropped successfully."}
}

// TestDatabase checks that a connection can be opened and validated
func (s *Service) TestDatabase(ctx context.Context) (repository.Connectivity, Result) {
	c := s.store.CheckConnectivity(ctx)
	switch c.State {
	case repository.Healthy:
		s.metrics.DatabaseUp.Set(1)
		return c, Result{Kind: Success, Message: "Database connection is OK."}
	case repository.Unhealthy:
		s.metrics.DatabaseUp.Set(0)
		return c, Result{Kind: StorageFailed, Message: fmt.Sprintf("Database connection is not valid. Error: %v", c.Err)}
	default:
		s.metrics.DatabaseUp.Set(0)
		return c, Result{Kind: StorageFailed, Message: fmt.Sprintf("Failed to connect to database. Error: %v", c.Err)}
	}
}
