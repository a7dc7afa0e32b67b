package models

// TransactionType is a labelled transaction category with a numeric code
type TransactionType struct {
	ID   int64  `json:"trxTypeId"`
	Type string `json:"type" validate:"required"`
	Code int    `json:"code"`
}
