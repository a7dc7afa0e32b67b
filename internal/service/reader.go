package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Dan9191/ledger-service/internal/coerce"
	"github.com/Dan9191/ledger-service/internal/models"
)

// FindTransactionsByAccount returns the transaction documents of an own
// account number. No match yields an empty slice. A database failure yields
// an error document instead of the slice.
func (s *Service) FindTransactionsByAccount(ctx context.Context, accountNumber string) ([]models.TransactionDocument, *models.ErrorDocument) {
	start := time.Now()
	rows, err := s.store.FindTransactionsByAccount(ctx, accountNumber)
	s.metrics.ReaderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Errorf("Failed to find transactions for account %s: %v", accountNumber, err)
		return nil, &models.ErrorDocument{
			Error:   "Failed to find transactions by account number.",
			Message: storageDetail(err),
		}
	}

	docs := make([]models.TransactionDocument, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, s.toDocument(row))
	}
	return docs, nil
}

func (s *Service) toDocument(row models.TransactionRow) models.TransactionDocument {
	doc := models.TransactionDocument{
		Amount: models.AmountDocument{
			Currency: row.Currency,
			Value:    json.Number(row.Amount.StringFixed(2)),
		},
		BankRef:     row.BankRef,
		BookingDate: formatDate(row.BookingDate),
		CounterPartyAccount: models.CounterPartyDocument{
			AccountName:   row.CounterPartyName,
			AccountNumber: s.padAccountNumber(row.CounterPartyNumber),
			BankCode:      row.CounterPartyCode,
		},
		CreditDebitIndicator: row.CreditDebitIndicator,
		ID:                   row.ExternalID,
		OwnAccountNumber:     row.OwnAccountNumber,
		PostingDate:          formatDate(row.PostingDate),
		ProductBankRef:       row.ProductBankRef,
		SpecificSymbol:       row.SpecificSymbol,
		StatementNumber:      row.StatementNumber,
		StatementPeriod:      row.StatementPeriod,
		TransactionID:        row.TransactionID,
		TransactionType:      row.TypeLabel,
		TransactionTypeCode:  row.TypeCode,
		VariableSymbol:       row.VariableSymbol,
	}
	if row.Detail1 != nil || row.Detail2 != nil || row.Detail3 != nil || row.Detail4 != nil {
		doc.Details = &models.DetailsDocument{
			Detail1: row.Detail1,
			Detail2: row.Detail2,
			Detail3: row.Detail3,
			Detail4: row.Detail4,
		}
	}
	return doc
}

// padAccountNumber renders a numeric account number as 16 zero-padded
// digits. Non-numeric numbers are returned unchanged.
func (s *Service) padAccountNumber(number string) string {
	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil || n < 0 {
		s.log.Warnf("Account number %q is not numeric, returning it unpadded", number)
		return number
	}
	return fmt.Sprintf("%016d", n)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(coerce.DateLayout)
	return &v
}
