package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/ledger-service/internal/models"
)

const transactionsByAccountQuery = `
	SELECT t."trxId", t."amount", t."currency", t."id", t."bankref", t."transactionId",
		t."bookingDate", t."postingDate", t."creditDebitIndicator", t."ownAccountNumber",
		t."counterPartyAccount", t."detail1", t."detail2", t."detail3", t."detail4",
		t."productBankRef", t."transactionType", t."statement",
		t."constantSymbol", t."specificSymbol", t."variableSymbol",
		a."name", a."number", a."code",
		s."number", s."period",
		tt."type", tt."code"
	FROM "transaction" t
	JOIN "account" a ON t."counterPartyAccount" = a."accountId"
	JOIN "statement" s ON t."statement" = s."statementId"
	JOIN "transactionType" tt ON t."transactionType" = tt."trxTypeId"
	WHERE t."ownAccountNumber" = $1`

// FindTransactionsByAccount returns the transactions whose own account number
// equals accountNumber, in the order the database yields them
func (r *Repository) FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionRow, error) {
	result := []models.TransactionRow{}
	err := r.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, transactionsByAccountQuery, accountNumber)
		if err != nil {
			return fmt.Errorf("failed to find transactions: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			row, err := scanTransactionRow(rows)
			if err != nil {
				return fmt.Errorf("failed to scan transaction: %w", err)
			}
			result = append(result, row)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func scanTransactionRow(rows *sql.Rows) (models.TransactionRow, error) {
	var row models.TransactionRow
	var transactionID, creditDebit, ownAccount, productBankRef sql.NullString
	var detail1, detail2, detail3, detail4 sql.NullString
	var constantSymbol, specificSymbol, varSymbol sql.NullString
	var bookingDate, postingDate sql.NullTime
	err := rows.Scan(
		&row.ID, &row.Amount, &row.Currency, &row.ExternalID, &row.BankRef, &transactionID,
		&bookingDate, &postingDate, &creditDebit, &ownAccount,
		&row.CounterPartyAccount, &detail1, &detail2, &detail3, &detail4,
		&productBankRef, &row.TransactionType, &row.Statement,
		&constantSymbol, &specificSymbol, &varSymbol,
		&row.CounterPartyName, &row.CounterPartyNumber, &row.CounterPartyCode,
		&row.StatementNumber, &row.StatementPeriod,
		&row.TypeLabel, &row.TypeCode,
	)
	if err != nil {
		return row, err
	}

	row.TransactionID = nullString(transactionID)
	row.BookingDate = nullTime(bookingDate)
	row.PostingDate = nullTime(postingDate)
	row.CreditDebitIndicator = nullString(creditDebit)
	row.OwnAccountNumber = nullString(ownAccount)
	row.Detail1 = nullString(detail1)
	row.Detail2 = nullString(detail2)
	row.Detail3 = nullString(detail3)
	row.Detail4 = nullString(detail4)
	row.ProductBankRef = nullString(productBankRef)
	row.ConstantSymbol = nullString(constantSymbol)
	row.SpecificSymbol = nullString(specificSymbol)
	row.VariableSymbol = nullString(varSymbol)
	return row, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}
