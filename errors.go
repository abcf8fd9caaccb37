package fluxcost

import "github.com/viant/fluxcost/service/accounting"

var (
	// ErrDuplicateProcess is returned when adding a PID that already exists.
	ErrDuplicateProcess = accounting.ErrDuplicateProcess

	// ErrProcessNotFound is returned when allocating to an unknown PID.
	ErrProcessNotFound = accounting.ErrProcessNotFound

	// ErrUnknownResourceKind is returned when no policy is registered for
	// the requested kind.
	ErrUnknownResourceKind = accounting.ErrUnknownResourceKind
)
