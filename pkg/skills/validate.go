package skills

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	maxNameLength          = 64
	maxDescriptionLength   = 1024
	maxCompatibilityLength = 500
)

// namePattern matches lowercase kebab-case names: letters and digits
// separated by single hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// excludedDirs are directory names skipped during validation and cataloging.
var excludedDirs = map[string]bool{"template": true}

// FindSkillFiles returns all SKILL.md paths under root, sorted, excluding
// template directories.
func FindSkillFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == SkillFileName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", root)
	}

	return files, nil
}

// ValidateTree validates every SKILL.md under root and returns one error per
// violation, accumulated across all files. Returns an error if no SKILL.md
// files exist at all.
func ValidateTree(root string) error {
	files, err := FindSkillFiles(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no %s files found under %s", SkillFileName, root)
	}

	var result *multierror.Error
	for _, file := range files {
		if err := ValidateFile(file); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// ValidateFile checks one SKILL.md document against the skill authoring
// rules: well-formed frontmatter, a kebab-case name matching the parent
// directory, a bounded description, an optional bounded compatibility field,
// and a non-empty body.
func ValidateFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "%s: failed to read file", path)
	}

	fm, body, err := parseSkillFile(content)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}

	var result *multierror.Error
	addError := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Errorf("%s: "+format, append([]interface{}{path}, args...)...))
	}

	switch {
	case !fm.Has("name"):
		addError("frontmatter missing required field: name")
	case fm.Name == "":
		addError("frontmatter field 'name' must be a non-empty string")
	default:
		if len(fm.Name) > maxNameLength {
			addError("frontmatter field 'name' exceeds %d chars", maxNameLength)
		}
		if !namePattern.MatchString(fm.Name) {
			addError("frontmatter field 'name' must be lowercase letters, numbers, and single hyphens only")
		}
		if filepath.Base(filepath.Dir(path)) != fm.Name {
			addError("frontmatter field 'name' must match the parent directory name")
		}
	}

	switch {
	case !fm.Has("description"):
		addError("frontmatter missing required field: description")
	case fm.Description == "":
		addError("frontmatter field 'description' must be a non-empty string")
	case len(fm.Description) > maxDescriptionLength:
		addError("frontmatter field 'description' exceeds %d chars", maxDescriptionLength)
	}

	if fm.Has("compatibility") {
		if fm.Compatibility == "" {
			addError("frontmatter field 'compatibility' must be a non-empty string")
		} else if len(fm.Compatibility) > maxCompatibilityLength {
			addError("frontmatter field 'compatibility' exceeds %d chars", maxCompatibilityLength)
		}
	}

	if strings.TrimSpace(body) == "" {
		addError("missing markdown content after frontmatter")
	}

	return result.ErrorOrNil()
}
