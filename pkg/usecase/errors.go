package usecase

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrSlotOccupied is returned when registering into a roster position
	// already held by a different person. Detected locally before any
	// write reaches the backend.
	ErrSlotOccupied = goerr.New("position is already occupied")

	// ErrTaskNotFound is returned when a task id does not resolve within
	// the unit's current state
	ErrTaskNotFound = goerr.New("dispatch task not found")

	// ErrNoProfile is returned by session operations when no profile
	// store is configured or no profile is bound
	ErrNoProfile = goerr.New("no session profile")
)
