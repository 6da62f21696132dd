package installer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Mode selects where skills are installed.
type Mode int

const (
	// ModeUnset means no mode flag was given; the resolver falls back to the
	// environment override or an interactive prompt.
	ModeUnset Mode = iota
	// ModeGlobal installs under the per-user directory (~/.skillsync/skills).
	ModeGlobal
	// ModeLocal installs under the project-relative directory (./.skillsync/skills).
	ModeLocal
)

// Prompter asks the user a question with a fixed set of options and returns
// the raw answer. presenter.Prompt satisfies this.
type Prompter func(question string, options ...string) string

// GlobalRoot returns the per-user skills directory.
func GlobalRoot() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(homeDir, ".skillsync", "skills"), nil
}

// LocalRoot returns the project-relative skills directory.
func LocalRoot() string {
	return filepath.Join(".skillsync", "skills")
}

// ResolveDestination determines the installation root and creates it.
// Precedence, highest first: the environment override path, the explicit mode
// flag, then an interactive prompt that defaults to global on any answer other
// than "local". The returned path is absolute, and the call is idempotent.
func ResolveDestination(mode Mode, envOverride string, prompt Prompter) (string, error) {
	root, err := chooseRoot(mode, envOverride, prompt)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve destination path %q", root)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", errors.Wrapf(err, "destination %q is not writable", abs)
	}
	return abs, nil
}

func chooseRoot(mode Mode, envOverride string, prompt Prompter) (string, error) {
	if envOverride != "" {
		return envOverride, nil
	}

	switch mode {
	case ModeGlobal:
		return GlobalRoot()
	case ModeLocal:
		return LocalRoot(), nil
	}

	if prompt != nil && prompt("Install skills globally or locally?", "global", "local") == "local" {
		return LocalRoot(), nil
	}
	return GlobalRoot()
}
