package health

import "errors"

// ErrCheckTimeout is joined to the error of a check that outlived the timeout.
var ErrCheckTimeout = errors.New("health: check timeout")
