// Package installer materializes skill artifacts from branches of the skills
// repository into a local destination directory. It converts every
// per-artifact failure into an outcome; errors never unwind past the driver.
package installer

import "context"

// Locator is the read-only view of the skills repository the installer
// consumes. See pkg/source for the git-backed implementation and the
// ErrNotFound / ErrBranchNotFound / ErrRemoteUnavailable taxonomy.
type Locator interface {
	LocatePrimary(ctx context.Context, branch, artifactPath string) ([]byte, error)
	ListReferenceFiles(ctx context.Context, branch, artifactPath string) ([]string, error)
	FetchReference(ctx context.Context, branch, artifactPath, name string) ([]byte, error)
}

// Status is the terminal state of one artifact's installation.
type Status string

const (
	// StatusInstalled means the primary document and all reference files were written.
	StatusInstalled Status = "installed"

	// StatusInstalledWithWarnings means the primary document was written but
	// some reference files could not be fetched.
	StatusInstalledWithWarnings Status = "installed-with-warnings"

	// StatusSkipped means the primary document was absent (or the fetch
	// failed, in which case Outcome.Err is set) and nothing was written.
	StatusSkipped Status = "skipped-not-found"
)

// Outcome records the result of installing one artifact descriptor.
type Outcome struct {
	Branch             string
	Path               string
	Name               string
	Status             Status
	ReferenceFileCount int
	Warnings           []string

	// Err annotates a skipped artifact whose fetch failed outright, as
	// opposed to an ordinary missing primary document.
	Err error
}

// Installed reports whether the artifact ended up on disk.
func (o Outcome) Installed() bool {
	return o.Status == StatusInstalled || o.Status == StatusInstalledWithWarnings
}
