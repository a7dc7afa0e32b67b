package service

import (
	"context"
	"errors"
	"io/fs"
	"reflect"
	"strings"

	"github.com/Dan9191/ledger-service/internal/coerce"
	"github.com/Dan9191/ledger-service/internal/metrics"
	"github.com/Dan9191/ledger-service/internal/models"
	"github.com/Dan9191/ledger-service/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// Store is the persistence the ledger service needs
type Store interface {
	InitializeSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error
	CheckConnectivity(ctx context.Context) repository.Connectivity
	CreateAccount(ctx context.Context, account *models.Account) error
	CreateStatement(ctx context.Context, statement *models.Statement) error
	CreateTransactionType(ctx context.Context, trxType *models.TransactionType) error
	CreateTransaction(ctx context.Context, trx *models.Transaction) error
	FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionRow, error)
}

// Service handles business logic
type Service struct {
	store    Store
	log      *logrus.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	seeds    fs.FS
}

// NewService initializes a new service. seeds holds the seed collections
// replayed by SeedAll.
func NewService(store Store, log *logrus.Logger, m *metrics.Metrics, seeds fs.FS) *Service {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		store:    store,
		log:      log,
		metrics:  m,
		validate: validate,
		seeds:    seeds,
	}
}

// check runs the validate tags of v and reports missing fields as a ValidationError
func (s *Service) check(required []string, v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		missing = append(missing, fe.Field())
	}
	return &ValidationError{Required: required, Missing: missing}
}

// finish records the outcome of a write and converts it into a Result
func (s *Service) finish(entity string, err error, success string) Result {
	result := Result{Kind: Success, Message: success}
	if err != nil {
		result = resultFromError(entity, err)
		switch result.Kind {
		case StorageFailed:
			s.log.Errorf("Failed to create %s: %v", entity, err)
		default:
			s.log.Warnf("Rejected %s input: %v", entity, err)
		}
	}
	s.metrics.Writes.WithLabelValues(entity, result.Kind.String()).Inc()
	return result
}

// track returns the coerced value, logging and counting it when a default
// was substituted
func track[T any](s *Service, entity, field string, r coerce.Result[T]) T {
	if r.Failed() {
		s.log.WithFields(logrus.Fields{
			"entity": entity,
			"field":  field,
		}).Warnf("Using default value: %s", r.Reason)
		s.metrics.CoercionDefaults.WithLabelValues(entity, field).Inc()
	}
	return r.Value
}
