package models

import "encoding/json"

// TransactionDocument is the nested JSON shape returned by the account
// transactions lookup
type TransactionDocument struct {
	Amount               AmountDocument       `json:"amount"`
	BankRef              string               `json:"bankref"`
	BookingDate          *string              `json:"bookingDate"`
	CounterPartyAccount  CounterPartyDocument `json:"counterPartyAccount"`
	CreditDebitIndicator *string              `json:"creditDebitIndicator"`
	Details              *DetailsDocument     `json:"details,omitempty"`
	ID                   string               `json:"id"`
	OwnAccountNumber     *string              `json:"ownAccountNumber"`
	PostingDate          *string              `json:"postingDate"`
	ProductBankRef       *string              `json:"productBankRef"`
	SpecificSymbol       *string              `json:"specificSymbol"`
	StatementNumber      string               `json:"statementNumber"`
	StatementPeriod      string               `json:"statementPeriod"`
	TransactionID        *string              `json:"transactionId"`
	TransactionType      string               `json:"transactionType"`
	TransactionTypeCode  int                  `json:"transactionTypeCode"`
	VariableSymbol       *string              `json:"variableSymbol"`
}

// AmountDocument carries the amount as a JSON number with two decimals
type AmountDocument struct {
	Currency string      `json:"currency"`
	Value    json.Number `json:"value"`
}

// CounterPartyDocument describes the other side of a transaction
type CounterPartyDocument struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
}

// DetailsDocument holds the free-text details that are present
type DetailsDocument struct {
	Detail1 *string `json:"detail1,omitempty"`
	Detail2 *string `json:"detail2,omitempty"`
	Detail3 *string `json:"detail3,omitempty"`
	Detail4 *string `json:"detail4,omitempty"`
}

// ErrorDocument is returned in place of the transaction list when the lookup fails
type ErrorDocument struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
