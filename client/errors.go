package client

import "errors"

var (
	// ErrNotFound maps the server's NOT_FOUND outcome.
	ErrNotFound = errors.New("schedule or timeslot not found")
	// ErrFull maps the server's FULL outcome: the slot reached capacity first.
	ErrFull = errors.New("timeslot is full")
	// ErrAlreadyJoined maps the server's ALREADY_JOINED outcome.
	ErrAlreadyJoined = errors.New("already joined this timeslot")
	// ErrNotJoined maps the server's NOT_JOINED outcome.
	ErrNotJoined = errors.New("not joined to this timeslot")
	// ErrConflict maps the remaining conflict outcomes (reset contention).
	ErrConflict = errors.New("schedule conflict")
	// ErrUnauthorized maps 401/403 responses.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrActionInFlight is returned when a join/leave is requested for a
	// slot whose previous action has not resolved yet. The coordinator
	// never lets two actions race on the same slot.
	ErrActionInFlight = errors.New("an action for this timeslot is already in flight")

	// ErrNoSchedule is returned when the coordinator has no loaded view yet.
	ErrNoSchedule = errors.New("no schedule loaded")

	// ErrServer covers transport failures and unexpected responses.
	ErrServer = errors.New("server error")
)
