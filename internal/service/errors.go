package service

import (
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// withFallback gives a failed action the message the user sees. Backend rejections
// keep the backend's own message; transport and decoding failures get the action's
// fallback text. Validation and session errors pass through untouched.
func withFallback(err error, fallback string) error {
	if err == nil {
		return nil
	}
	domainErr := apperrors.ToDomainError(err)
	switch domainErr.Code {
	case apperrors.CodeUnauthorized, apperrors.CodeValidation, apperrors.CodeForbidden, apperrors.CodeNotFound:
		return err
	case apperrors.CodeBackend:
		if domainErr.Message != "" {
			return err
		}
	}
	return &apperrors.DomainError{
		Code:       domainErr.Code,
		Message:    fallback,
		HTTPStatus: domainErr.HTTPStatus,
		Details:    domainErr.Details,
		Err:        err,
	}
}
