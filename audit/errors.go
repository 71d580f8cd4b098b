package audit

import "errors"

// ErrAuditInputValidation the message is missing or blank
var ErrAuditInputValidation = errors.New("AuditInputValidationError")

// ErrInvalidAuditID the id is not a positive integer
var ErrInvalidAuditID = errors.New("InvalidAuditIdError")

// ErrAuditNotFound no entry matches the id
var ErrAuditNotFound = errors.New("Audit not found")
