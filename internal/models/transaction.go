package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Default transaction values used when the input omits them
const (
	DefaultCurrency = "CZK"
	DefaultBankRef  = "NA"
)

// Transaction is a persisted ledger transaction.
// Nullable columns are pointers; a nil value is written as NULL.
type Transaction struct {
	ID                   int64
	Amount               decimal.Decimal
	Currency             string
	ExternalID           string
	BankRef              string
	TransactionID        *string
	BookingDate          *time.Time
	PostingDate          *time.Time
	CreditDebitIndicator *string
	OwnAccountNumber     *string
	CounterPartyAccount  int64
	Detail1              *string
	Detail2              *string
	Detail3              *string
	Detail4              *string
	ProductBankRef       *string
	TransactionType      int64
	Statement            int64
	ConstantSymbol       *string
	SpecificSymbol       *string
	VariableSymbol       *string
}

// TransactionRow is one row of the transaction join with its counter-party
// account, statement and transaction type resolved.
type TransactionRow struct {
	Transaction
	CounterPartyName   string
	CounterPartyNumber string
	CounterPartyCode   string
	StatementNumber    string
	StatementPeriod    string
	TypeLabel          string
	TypeCode           int
}
