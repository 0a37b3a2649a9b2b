package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"bookkeeper/internal/auth"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// validateInput checks presence tags and collapses any failure into one client message.
func validateInput(in interface{}, msg string) error {
	if err := validate.Struct(in); err != nil {
		return apperrors.NewValidationError(msg)
	}
	return nil
}

// ensureOwner confirms the caller still exists in the credential store.
func ensureOwner(ctx context.Context, users repository.UserRepository, caller auth.Identity) error {
	if _, err := users.FindByID(ctx, caller.UserID); err != nil {
		return lookupError(err, apperrors.ErrUserNotFound, "find owner")
	}
	return nil
}

// lookupError turns a repository miss into the given not-found error and wraps anything else.
func lookupError(err error, notFound error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// patchString leaves dst untouched for an absent key or an empty string.
func patchString(field string, o model.Optional[string], dst *string) error {
	if !o.Set {
		return nil
	}
	if !o.Present() {
		return apperrors.NewValidationError(field + " cannot be null")
	}
	if o.Value != "" {
		*dst = o.Value
	}
	return nil
}

func patchNumber(field string, o model.Optional[model.Number], dst *float64) error {
	if !o.Set {
		return nil
	}
	if !o.Present() {
		return apperrors.NewValidationError(field + " cannot be null")
	}
	*dst = o.Value.Float64()
	return nil
}
