package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/skillsync/skillsync/pkg/logger"
	"github.com/skillsync/skillsync/pkg/manifest"
	"github.com/skillsync/skillsync/pkg/source"
)

// Installer copies one artifact at a time from the locator into the
// destination root. Each artifact owns exactly one subdirectory, named after
// the last segment of its path; no two artifacts' write sets overlap unless
// their names collide, in which case the later manifest entry wins.
type Installer struct {
	locator  Locator
	destRoot string
}

// New creates an installer writing under destRoot, which must already exist
// (see ResolveDestination).
func New(locator Locator, destRoot string) *Installer {
	return &Installer{
		locator:  locator,
		destRoot: destRoot,
	}
}

// Install materializes a single artifact and reports its outcome. The primary
// document is all-or-nothing: on any failure writing it, the artifact
// directory is removed again. Reference files are best-effort; individual
// fetch failures become warnings, not errors.
func (i *Installer) Install(ctx context.Context, branch, artifactPath string) Outcome {
	out := Outcome{
		Branch: branch,
		Path:   artifactPath,
		Name:   manifest.ArtifactName(artifactPath),
	}
	log := logger.G(ctx).WithField("branch", branch).WithField("artifact", artifactPath)

	primary, err := i.locator.LocatePrimary(ctx, branch, artifactPath)
	if err != nil {
		out.Status = StatusSkipped
		if !errors.Is(err, source.ErrNotFound) && !errors.Is(err, source.ErrBranchNotFound) {
			out.Err = err
			log.WithError(err).Warn("failed to fetch primary document")
		} else {
			log.Debug("primary document not found, skipping")
		}
		return out
	}

	artifactDir := filepath.Join(i.destRoot, out.Name)
	if err := i.writePrimary(artifactDir, primary); err != nil {
		out.Status = StatusSkipped
		out.Err = err
		log.WithError(err).Warn("failed to write primary document")
		return out
	}

	out.ReferenceFileCount, out.Warnings = i.installReferences(ctx, branch, artifactPath, artifactDir)

	if len(out.Warnings) > 0 {
		out.Status = StatusInstalledWithWarnings
	} else {
		out.Status = StatusInstalled
	}
	log.WithField("references", out.ReferenceFileCount).Debug("artifact installed")
	return out
}

// writePrimary replaces the artifact directory wholesale and writes SKILL.md
// into it. Removing first guarantees re-runs are byte-identical and leave no
// stale reference files behind.
func (i *Installer) writePrimary(artifactDir string, content []byte) error {
	if err := os.RemoveAll(artifactDir); err != nil {
		return errors.Wrapf(err, "failed to clear %s", artifactDir)
	}
	if err := os.MkdirAll(artifactDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", artifactDir)
	}

	primaryPath := filepath.Join(artifactDir, source.PrimaryFileName)
	if err := os.WriteFile(primaryPath, content, 0o644); err != nil {
		// No partial primary-document state: take the directory down with it.
		os.RemoveAll(artifactDir)
		return errors.Wrapf(err, "failed to write %s", primaryPath)
	}
	return nil
}

// installReferences fetches and writes the artifact's reference files,
// returning the number written and a warning per file that failed.
func (i *Installer) installReferences(ctx context.Context, branch, artifactPath, artifactDir string) (int, []string) {
	names, err := i.locator.ListReferenceFiles(ctx, branch, artifactPath)
	if err != nil {
		return 0, []string{fmt.Sprintf("failed to list reference files: %v", err)}
	}
	if len(names) == 0 {
		return 0, nil
	}

	refsDir := filepath.Join(artifactDir, source.ReferencesDir)
	if err := os.MkdirAll(refsDir, 0o755); err != nil {
		return 0, []string{fmt.Sprintf("failed to create references directory: %v", err)}
	}

	written := 0
	var warnings []string
	for _, name := range names {
		content, err := i.locator.FetchReference(ctx, branch, artifactPath, name)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("reference file %s: %v", name, err))
			continue
		}
		if err := os.WriteFile(filepath.Join(refsDir, name), content, 0o644); err != nil {
			warnings = append(warnings, fmt.Sprintf("reference file %s: %v", name, err))
			continue
		}
		written++
	}
	return written, warnings
}
