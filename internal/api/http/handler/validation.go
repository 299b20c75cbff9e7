package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dkarpov/taskman-server/internal/apierrors"
)

var validate = validator.New()

// Each request type runs an explicit, ordered list of pure predicates; every
// failing predicate contributes one field error.

func requireNonEmpty(field, value string, errs []apierrors.FieldError, message string) []apierrors.FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, apierrors.FieldError{Field: field, Message: message})
	}
	return errs
}

func requireEmail(field, value string, errs []apierrors.FieldError) []apierrors.FieldError {
	if validate.Var(value, "required,email") != nil {
		errs = append(errs, apierrors.FieldError{Field: field, Message: "must be a valid email address"})
	}
	return errs
}

func requireMinLength(field, value string, min int, errs []apierrors.FieldError, message string) []apierrors.FieldError {
	if len(value) < min {
		errs = append(errs, apierrors.FieldError{Field: field, Message: message})
	}
	return errs
}
