package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/ledger-service/internal/models"
)

// CreateAccount inserts an account and fills in its generated id
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO "account" ("name", "number", "code")
		VALUES ($1, $2, $3)
		RETURNING "accountId"`
	return r.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, account.Name, account.Number, account.Code).
			Scan(&account.ID)
		if err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
}

// CreateStatement inserts a statement and fills in its generated id
func (r *Repository) CreateStatement(ctx context.Context, statement *models.Statement) error {
	query := `
		INSERT INTO "statement" ("number", "period", "description")
		VALUES ($1, $2, $3)
		RETURNING "statementId"`
	return r.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, statement.Number, statement.Period, statement.Description).
			Scan(&statement.ID)
		if err != nil {
			return fmt.Errorf("failed to create statement: %w", err)
		}
		return nil
	})
}

// CreateTransactionType inserts a transaction type and fills in its generated id
func (r *Repository) CreateTransactionType(ctx context.Context, trxType *models.TransactionType) error {
	query := `
		INSERT INTO "transactionType" ("type", "code")
		VALUES ($1, $2)
		RETURNING "trxTypeId"`
	return r.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, trxType.Type, trxType.Code).
			Scan(&trxType.ID)
		if err != nil {
			return fmt.Errorf("failed to create transaction type: %w", err)
		}
		return nil
	})
}

// CreateTransaction inserts a transaction and fills in its generated id.
// Referential integrity of the counter-party, statement and type ids is left
// to the foreign key constraints.
func (r *Repository) CreateTransaction(ctx context.Context, trx *models.Transaction) error {
	query := `
		INSERT INTO "transaction" (
			"amount", "currency", "bankref", "bookingDate", "counterPartyAccount",
			"creditDebitIndicator", "detail1", "detail2", "detail3", "detail4",
			"id", "ownAccountNumber", "postingDate", "productBankRef", "constantSymbol",
			"specificSymbol", "statement", "transactionId", "transactionType", "variableSymbol")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING "trxId"`
	return r.withConn(ctx, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query,
			trx.Amount, trx.Currency, trx.BankRef, trx.BookingDate, trx.CounterPartyAccount,
			trx.CreditDebitIndicator, trx.Detail1, trx.Detail2, trx.Detail3, trx.Detail4,
			trx.ExternalID, trx.OwnAccountNumber, trx.PostingDate, trx.ProductBankRef, trx.ConstantSymbol,
			trx.SpecificSymbol, trx.Statement, trx.TransactionID, trx.TransactionType, trx.VariableSymbol,
		).Scan(&trx.ID)
		if err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return nil
	})
}
