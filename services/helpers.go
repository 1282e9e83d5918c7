package services

import (
	"fmt"

	"planhub/backend/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parseID turns a caller-supplied hex id into an ObjectID, reporting a
// malformed value as a validation failure rather than a store error.
func parseID(value, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid %s id %q", errs.ErrValidation, label, value)
	}
	return id, nil
}

// parseOptionalID is parseID for fields where the empty string means unset.
func parseOptionalID(value, label string) (*primitive.ObjectID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := parseID(value, label)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseIDList(values []string, label string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		id, err := parseID(value, label)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
