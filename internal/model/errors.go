package model

import "errors"

var (
	// ErrLoadFailure reports that an initial fetch failed.
	ErrLoadFailure = errors.New("load failed")
	// ErrMutationRejected reports that the service refused or failed a
	// mutation. Local state is left as it was.
	ErrMutationRejected = errors.New("mutation rejected")
	// ErrNotFound reports a mutation aimed at an entity the model does not
	// hold. No service call is made.
	ErrNotFound = errors.New("not found")
)
