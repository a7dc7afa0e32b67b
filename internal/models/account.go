package models

// Account is a counter-party account row
type Account struct {
	ID     int64  `json:"accountId"`
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
	Code   string `json:"code" validate:"required"`
}
