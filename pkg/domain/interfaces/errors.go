package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repository reads when the requested record
// does not exist. Backends wrap it so callers can tell a missing record
// apart from an infrastructure failure.
var ErrNotFound = goerr.New("not found")
