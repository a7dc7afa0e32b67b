package models

// Default statement values used when the input omits them
const (
	DefaultStatementNumber = "001"
	DefaultStatementPeriod = "2025"
)

// Statement groups transactions of one bank statement
type Statement struct {
	ID          int64  `json:"statementId"`
	Number      string `json:"number" validate:"required"`
	Period      string `json:"period" validate:"required"`
	Description string `json:"description"`
}
