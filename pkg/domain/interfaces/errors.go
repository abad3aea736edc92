package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned when a record or the session profile does not
// exist in the queried store
var ErrNotFound = goerr.New("record not found")
