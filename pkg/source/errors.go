package source

import "errors"

// Sentinel errors for the source lookup taxonomy. All are checkable with
// errors.Is even when wrapped with additional context.

// ErrNotFound is returned when a file is absent at the given branch and path.
// This is an expected outcome for artifacts removed from their source branch,
// not a fault.
var ErrNotFound = errors.New("file not found")

// ErrBranchNotFound is returned when the branch itself does not exist on the
// remote. Callers treat it like ErrNotFound for every artifact on that branch.
var ErrBranchNotFound = errors.New("branch does not exist")

// ErrRemoteUnavailable is returned when the remote could not be reached at all
// (network failure, authentication failure, missing repository). Distinct from
// a missing-path condition so callers can surface it separately.
var ErrRemoteUnavailable = errors.New("remote unavailable")
