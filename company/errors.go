package company

import "errors"

var (
	ErrCompanyTypeInputValidation = errors.New("CompanyTypeInputValidationError")
	ErrInvalidCompanyTypeID       = errors.New("InvalidCompanyTypeIdError")
	ErrCompanyTypeNotFound        = errors.New("CompanyType not found")

	ErrCompanyInputValidation = errors.New("CompanyInputValidationError")
	ErrInvalidCompanyID       = errors.New("InvalidCompanyIdError")
	ErrCompanyNotFound        = errors.New("Company not found")
)
