package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Cheque errors
var (
	ErrChequeNumberMissing   = errors.New("the cheque number must be set")
	ErrChequeNumberNotUnique = errors.New("the cheque number is already in use by an active cheque")
	ErrChequeDateMissing     = errors.New("the cheque date must be set")
	ErrChequeAmountNegative  = errors.New("the cheque amount must not be negative")
	ErrChequeStatusInvalid   = errors.New("the cheque status must be one of 'pending', 'cashed', 'returned'")
	ErrCorbataNegative       = errors.New("the corbata day count must not be negative")
)

// User errors
var (
	ErrUsernameMissing   = errors.New("the username must be set")
	ErrUsernameNotUnique = errors.New("this username is already taken")
	ErrUserRoleInvalid   = errors.New("the user role must be one of 'admin', 'employee'")
)

// Settings errors
var (
	ErrCurrencyInvalid = errors.New("the currency must be a valid ISO 4217 code")
	ErrPageSizeInvalid = errors.New("the page size must be larger than zero")
)
