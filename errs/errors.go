package errs

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Domain error set exposed to the HTTP layer. Raw store errors never cross
// the service boundary; they are translated into one of these.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")
)

// FromMongo translates a store-level error into the domain error set.
// Unique index violations become ErrAlreadyExists so that repositories do
// not have to pre-check uniqueness and race against concurrent writers.
func FromMongo(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
