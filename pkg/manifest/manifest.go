// Package manifest defines the installation manifest: the static mapping of
// repository branches to the skill artifacts installed from them. The built-in
// manifest is fixed per release; a YAML file can override it for testing or
// custom deployments.
package manifest

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// StableBranch is the default branch holding long-lived artifacts.
const StableBranch = "main"

// Group maps one branch to the ordered list of artifact paths installed from it.
type Group struct {
	Branch    string   `yaml:"branch"`
	Artifacts []string `yaml:"artifacts"`
}

// Manifest is an ordered list of branch groups. Order is significant only for
// deterministic output; artifacts are independent of each other.
type Manifest struct {
	Groups []Group `yaml:"groups"`
}

// Default returns the release manifest. Adding or removing an artifact is a
// data change here, not a control-flow change anywhere else.
func Default() Manifest {
	return Manifest{
		Groups: []Group{
			{
				Branch: StableBranch,
				Artifacts: []string{
					"engineering/code-review",
					"engineering/debugging",
					"engineering/incident-response",
					"writing/technical-docs",
				},
			},
			{
				Branch: "experimental",
				Artifacts: []string{
					"research/literature-survey",
					"data/sql-tuning",
				},
			},
		},
	}
}

// Load reads and validates a manifest from a YAML file.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.Wrap(err, "failed to read manifest file")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, errors.Wrap(err, "failed to parse manifest file")
	}

	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Validate checks that every group names a branch and that every artifact path
// is a non-empty relative path.
func (m Manifest) Validate() error {
	if len(m.Groups) == 0 {
		return errors.New("manifest has no branch groups")
	}

	for _, g := range m.Groups {
		if strings.TrimSpace(g.Branch) == "" {
			return errors.New("manifest group is missing a branch name")
		}
		if len(g.Artifacts) == 0 {
			return errors.Errorf("branch %q has no artifacts", g.Branch)
		}
		for _, p := range g.Artifacts {
			if err := validateArtifactPath(p); err != nil {
				return errors.Wrapf(err, "branch %q", g.Branch)
			}
		}
	}
	return nil
}

func validateArtifactPath(p string) error {
	if strings.TrimSpace(p) == "" {
		return errors.New("artifact path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return errors.Errorf("artifact path %q must be relative", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			return errors.Errorf("artifact path %q has an empty segment", p)
		}
		if seg == "." || seg == ".." {
			return errors.Errorf("artifact path %q must not contain %q", p, seg)
		}
	}
	return nil
}

// Total returns the number of artifact descriptors across all groups.
func (m Manifest) Total() int {
	n := 0
	for _, g := range m.Groups {
		n += len(g.Artifacts)
	}
	return n
}

// ArtifactName derives the installed directory name from an artifact path:
// its last slash-separated segment.
func ArtifactName(artifactPath string) string {
	segs := strings.Split(strings.TrimSuffix(artifactPath, "/"), "/")
	return segs[len(segs)-1]
}
