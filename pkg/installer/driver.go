package installer

import (
	"context"

	"github.com/skillsync/skillsync/pkg/logger"
	"github.com/skillsync/skillsync/pkg/manifest"
)

// Run iterates the manifest in order, installing one artifact at a time, and
// returns the accumulated report. Exactly one outcome is appended per artifact
// descriptor; nothing is retried and nothing aborts the loop. The recommended
// recovery for transient remote failures is re-running the whole tool, which
// is idempotent.
func Run(ctx context.Context, m manifest.Manifest, inst *Installer) *Report {
	report := &Report{}

	for _, group := range m.Groups {
		for _, artifactPath := range group.Artifacts {
			out := inst.Install(ctx, group.Branch, artifactPath)
			report.Outcomes = append(report.Outcomes, out)
			logger.G(ctx).
				WithField("branch", group.Branch).
				WithField("artifact", artifactPath).
				WithField("status", out.Status).
				Debug("artifact processed")
		}
	}

	return report
}
