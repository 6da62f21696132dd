// Package skills works with installed skill directories: discovering them,
// validating their SKILL.md documents, and generating the skills.json catalog.
// A skill is a directory containing a SKILL.md file with YAML frontmatter and
// an optional references subdirectory.
package skills

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// SkillFileName is the required document of every skill directory.
const SkillFileName = "SKILL.md"

// Skill represents an installed skill.
type Skill struct {
	Name        string // Name from frontmatter
	Description string // Brief description from frontmatter
	Directory   string // Full path to the skill directory
	Content     string // SKILL.md body without frontmatter
}

// Frontmatter holds the fields a SKILL.md document may declare.
type Frontmatter struct {
	Name          string
	Description   string
	License       string
	Compatibility string
	Version       string // nested metadata.version

	// present records which top-level keys appeared at all, so validation can
	// distinguish a missing key from an empty value.
	present map[string]bool
}

// Has reports whether the given top-level frontmatter key was present.
func (f Frontmatter) Has(key string) bool {
	return f.present[key]
}

// parseSkillFile splits a SKILL.md document into frontmatter and body.
// Returns an error only when the frontmatter block is missing entirely;
// field-level problems are the validator's job.
func parseSkillFile(content []byte) (Frontmatter, string, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return Frontmatter{}, "", errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return Frontmatter{}, "", errors.New("missing frontmatter")
	}

	fm := Frontmatter{present: make(map[string]bool)}
	for key := range metaData {
		fm.present[key] = true
	}
	fm.Name, _ = metaData["name"].(string)
	fm.Description, _ = metaData["description"].(string)
	fm.License, _ = metaData["license"].(string)
	fm.Compatibility, _ = metaData["compatibility"].(string)

	// goldmark-meta decodes nested mappings with yaml.v2 semantics, so the
	// inner map is keyed by interface{}.
	switch nested := metaData["metadata"].(type) {
	case map[string]interface{}:
		fm.Version, _ = nested["version"].(string)
	case map[interface{}]interface{}:
		fm.Version, _ = nested["version"].(string)
	}

	return fm, extractBody(string(content)), nil
}

// extractBody removes the YAML frontmatter block and returns the markdown body.
func extractBody(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.TrimLeft(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}
	return content
}
