package service

import (
	"context"
	"io"
	"testing"

	"github.com/Dan9191/ledger-service/internal/metrics"
	"github.com/Dan9191/ledger-service/internal/models"
	"github.com/Dan9191/ledger-service/internal/repository"
	"github.com/sirupsen/logrus"
)

// MockStore is a mock implementation of Store
type MockStore struct {
	InitializeSchemaFunc          func(ctx context.Context) error
	DropSchemaFunc                func(ctx context.Context) error
	CheckConnectivityFunc         func(ctx context.Context) repository.Connectivity
	CreateAccountFunc             func(ctx context.Context, account *models.Account) error
	CreateStatementFunc           func(ctx context.Context, statement *models.Statement) error
	CreateTransactionTypeFunc     func(ctx context.Context, trxType *models.TransactionType) error
	CreateTransactionFunc         func(ctx context.Context, trx *models.Transaction) error
	FindTransactionsByAccountFunc func(ctx context.Context, accountNumber string) ([]models.TransactionRow, error)
}

func (m *MockStore) InitializeSchema(ctx context.Context) error {
	if m.InitializeSchemaFunc != nil {
		return m.InitializeSchemaFunc(ctx)
	}
	return nil
}

func (m *MockStore) DropSchema(ctx context.Context) error {
	if m.DropSchemaFunc != nil {
		return m.DropSchemaFunc(ctx)
	}
	return nil
}

func (m *MockStore) CheckConnectivity(ctx context.Context) repository.Connectivity {
	if m.CheckConnectivityFunc != nil {
		return m.CheckConnectivityFunc(ctx)
	}
	return repository.Connectivity{State: repository.Healthy}
}

func (m *MockStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, account)
	}
	return nil
}

func (m *MockStore) CreateStatement(ctx context.Context, statement *models.Statement) error {
	if m.CreateStatementFunc != nil {
		return m.CreateStatementFunc(ctx, statement)
	}
	return nil
}

func (m *MockStore) CreateTransactionType(ctx context.Context, trxType *models.TransactionType) error {
	if m.CreateTransactionTypeFunc != nil {
		return m.CreateTransactionTypeFunc(ctx, trxType)
	}
	return nil
}

func (m *MockStore) CreateTransaction(ctx context.Context, trx *models.Transaction) error {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, trx)
	}
	return nil
}

func (m *MockStore) FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionRow, error) {
	if m.FindTransactionsByAccountFunc != nil {
		return m.FindTransactionsByAccountFunc(ctx, accountNumber)
	}
	return nil, nil
}

func newTestService(t *testing.T, store Store) (*Service, *metrics.Metrics) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := metrics.New(nil)
	return NewService(store, log, m, nil), m
}
