package service

import (
	"context"

	"github.com/Dan9191/ledger-service/internal/coerce"
	"github.com/Dan9191/ledger-service/internal/models"
	"github.com/shopspring/decimal"
)

const (
	entityAccount         = "account"
	entityStatement       = "statement"
	entityTransactionType = "transaction type"
	entityTransaction     = "transaction"
)

// CreateAccount validates and stores an account.
// name, number and code are required; nothing is written when one is missing.
func (s *Service) CreateAccount(ctx context.Context, body []byte) Result {
	doc, err := coerce.Parse(body)
	if err != nil {
		return s.finish(entityAccount, &MalformedInputError{Err: err}, "")
	}

	account := &models.Account{
		Name:   doc.StringOr("name", ""),
		Number: doc.StringOr("number", ""),
		Code:   doc.StringOr("code", ""),
	}
	if err := s.check([]string{"name", "number", "code"}, account); err != nil {
		return s.finish(entityAccount, err, "")
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return s.finish(entityAccount, &StorageError{Op: "create account", Err: err}, "")
	}

	s.log.Infof("Account created: %d (%s)", account.ID, account.Number)
	return s.finish(entityAccount, nil, "Account created successfully.")
}

// CreateTransactionType validates and stores a transaction type.
// An unusable code is stored as 0.
func (s *Service) CreateTransactionType(ctx context.Context, body []byte) Result {
	doc, err := coerce.Parse(body)
	if err != nil {
		return s.finish(entityTransactionType, &MalformedInputError{Err: err}, "")
	}

	trxType := &models.TransactionType{
		Type: doc.StringOr("type", ""),
		Code: track(s, entityTransactionType, "code", doc.Int("code", 0)),
	}
	if err := s.check([]string{"type"}, trxType); err != nil {
		return s.finish(entityTransactionType, err, "")
	}

	if err := s.store.CreateTransactionType(ctx, trxType); err != nil {
		return s.finish(entityTransactionType, &StorageError{Op: "create transaction type", Err: err}, "")
	}

	s.log.Infof("Transaction type created: %d (%s)", trxType.ID, trxType.Type)
	return s.finish(entityTransactionType, nil, "Transaction type created successfully.")
}

// CreateStatement stores a statement, defaulting number, period and
// description when they are absent. Explicitly empty number or period fail
// validation.
func (s *Service) CreateStatement(ctx context.Context, body []byte) Result {
	doc, err := coerce.Parse(body)
	if err != nil {
		return s.finish(entityStatement, &MalformedInputError{Err: err}, "")
	}

	statement := &models.Statement{
		Number:      doc.StringOr("number", models.DefaultStatementNumber),
		Period:      doc.StringOr("period", models.DefaultStatementPeriod),
		Description: doc.StringOr("description", ""),
	}
	if err := s.check([]string{"number", "period"}, statement); err != nil {
		return s.finish(entityStatement, err, "")
	}

	if err := s.store.CreateStatement(ctx, statement); err != nil {
		return s.finish(entityStatement, &StorageError{Op: "create statement", Err: err}, "")
	}

	s.log.Infof("Statement created: %d (%s/%s)", statement.ID, statement.Number, statement.Period)
	return s.finish(entityStatement, nil, "Statement created successfully.")
}

// CreateTransaction stores a transaction. Fields that cannot be coerced are
// replaced by defaults and the write goes ahead: amount becomes zero, dates
// become NULL and the counter-party, statement and type ids become 0.
func (s *Service) CreateTransaction(ctx context.Context, body []byte) Result {
	doc, err := coerce.Parse(body)
	if err != nil {
		return s.finish(entityTransaction, &MalformedInputError{Err: err}, "")
	}

	trx := &models.Transaction{
		Amount:               track(s, entityTransaction, "amount", doc.Decimal("amount", decimal.Zero)),
		Currency:             doc.StringOr("currency", models.DefaultCurrency),
		BankRef:              doc.StringOr("bankref", models.DefaultBankRef),
		BookingDate:          track(s, entityTransaction, "bookingDate", doc.Date("bookingDate")),
		PostingDate:          track(s, entityTransaction, "postingDate", doc.Date("postingDate")),
		CounterPartyAccount:  track(s, entityTransaction, "counterPartyAccount", doc.Int64("counterPartyAccount", 0)),
		Statement:            track(s, entityTransaction, "statement", doc.Int64("statement", 0)),
		TransactionType:      track(s, entityTransaction, "transactionType", doc.Int64("transactionType", 0)),
		ExternalID:           doc.StringOr("id", ""),
		CreditDebitIndicator: doc.String("creditDebitIndicator"),
		Detail1:              doc.String("detail1"),
		Detail2:              doc.String("detail2"),
		Detail3:              doc.String("detail3"),
		Detail4:              doc.String("detail4"),
		OwnAccountNumber:     doc.String("ownAccountNumber"),
		ProductBankRef:       doc.String("productBankRef"),
		ConstantSymbol:       doc.String("constantSymbol"),
		SpecificSymbol:       doc.String("specificSymbol"),
		TransactionID:        doc.String("transactionId"),
		VariableSymbol:       doc.String("variableSymbol"),
	}

	if err := s.store.CreateTransaction(ctx, trx); err != nil {
		return s.finish(entityTransaction, &StorageError{Op: "create transaction", Err: err}, "")
	}

	s.log.Infof("Transaction created: %d (%s %s)", trx.ID, trx.Amount.StringFixed(2), trx.Currency)
	return s.finish(entityTransaction, nil, "Transaction created successfully.")
}
