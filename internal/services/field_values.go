package services

import (
	"errors"
	"fmt"

	"bizconsole_backend/internal/models"
	"bizconsole_backend/internal/repositories"

	"github.com/google/uuid"
)

// validateFieldValues checks every value set against the catalog: each
// fieldRef must exist and each value must conform to its field's declared
// type. Dangling refs can still appear later through field deletion; that is
// a read-time concern, not a write-time one.
func validateFieldValues(fieldRepo repositories.FieldRepository, valueSets ...[]models.FieldValue) error {
	defs, err := lookupDefinitions(fieldRepo, valueSets...)
	if err != nil {
		return err
	}

	for _, set := range valueSets {
		for _, fv := range set {
			def, ok := defs[fv.FieldRef]
			if !ok {
				return fmt.Errorf("%w: unknown field %s", ErrValidation, fv.FieldRef)
			}
			if err := fv.Value.ConformsTo(def); err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
		}
	}
	return nil
}

// resolveFieldValues joins each value set with its field definitions in a
// single catalog query. Values whose definition no longer exists are kept
// with a nil field.
func resolveFieldValues(fieldRepo repositories.FieldRepository, valueSets ...[]models.FieldValue) ([][]models.ResolvedFieldValue, error) {
	defs, err := lookupDefinitions(fieldRepo, valueSets...)
	if err != nil {
		return nil, err
	}

	resolved := make([][]models.ResolvedFieldValue, len(valueSets))
	for i, set := range valueSets {
		out := make([]models.ResolvedFieldValue, 0, len(set))
		for _, fv := range set {
			out = append(out, models.ResolvedFieldValue{
				FieldRef: fv.FieldRef,
				Field:    defs[fv.FieldRef],
				Value:    fv.Value,
			})
		}
		resolved[i] = out
	}
	return resolved, nil
}

func lookupDefinitions(fieldRepo repositories.FieldRepository, valueSets ...[]models.FieldValue) (map[uuid.UUID]*models.InputField, error) {
	seen := map[uuid.UUID]bool{}
	ids := []uuid.UUID{}
	for _, set := range valueSets {
		for _, fv := range set {
			if !seen[fv.FieldRef] {
				seen[fv.FieldRef] = true
				ids = append(ids, fv.FieldRef)
			}
		}
	}

	defs, err := fieldRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load field definitions: %w", err)
	}
	return defs, nil
}

// mapNotFound converts the repository's ErrNotFound into the given
// service-level error, leaving other errors wrapped.
func mapNotFound(err error, notFound error, context string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", context, err)
}
