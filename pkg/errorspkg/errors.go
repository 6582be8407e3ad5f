// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates internal server error. It is the only error surfaced
// to clients for unexpected failures; detail stays in the logs.
var ErrInternal = errors.New("internal")
