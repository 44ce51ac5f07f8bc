// Package errdefs defines the error classes a run can fail with. Call
// sites wrap a class with github.com/pkg/errors so the class survives
// wrapping and callers can test for it with the Is helpers.
package errdefs

import "github.com/pkg/errors"

var (
	// ErrIo marks filesystem read, write, marker create or delete failures.
	ErrIo = errors.New("io failure")

	// ErrResolution marks a failed or unparsable closure query.
	ErrResolution = errors.New("resolution failure")

	// ErrMount marks mount table query, unmount and mount failures.
	ErrMount = errors.New("mount failure")

	// ErrConcurrency marks a collection task that could not be joined.
	ErrConcurrency = errors.New("concurrency failure")
)

func IsIo(err error) bool {
	return errors.Cause(err) == ErrIo
}

func IsResolution(err error) bool {
	return errors.Cause(err) == ErrResolution
}

func IsMount(err error) bool {
	return errors.Cause(err) == ErrMount
}

func IsConcurrency(err error) bool {
	return errors.Cause(err) == ErrConcurrency
}
