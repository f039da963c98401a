// Package common defines shared sentinel errors used across the store,
// repository and service layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrStoreClosed     = errors.New("store closed")

	// ErrNoChange is returned by read-modify-write callbacks to signal that
	// the collection is already in the desired state. The store treats it as
	// a successful no-op: nothing is written and no change event is emitted.
	ErrNoChange = errors.New("no change")
)
