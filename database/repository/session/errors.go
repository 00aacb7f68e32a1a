package sessionRepo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound indicates no session satisfied the lookup or update filter.
var ErrNotFound = errors.New("session record not found")

// IsTransient reports whether err is a retryable store conflict: a
// serialization write conflict between concurrent transactions or an
// unknown commit outcome. Callers retry these a bounded number of times.
func IsTransient(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorLabel("TransientTransactionError") ||
			se.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}
