package skills

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/skillsync/skillsync/pkg/installer"
)

// Discovery finds installed skills in a set of root directories. Earlier
// roots take precedence when two roots hold a skill with the same name.
type Discovery struct {
	roots []string
}

// NewDiscovery creates a discovery over the given roots. With no arguments it
// searches the local skills directory first, then the global one.
func NewDiscovery(roots ...string) (*Discovery, error) {
	if len(roots) > 0 {
		return &Discovery{roots: roots}, nil
	}

	globalRoot, err := installer.GlobalRoot()
	if err != nil {
		return nil, err
	}
	return &Discovery{roots: []string{installer.LocalRoot(), globalRoot}}, nil
}

// Discover returns all installed skills sorted by name. Directories without a
// parseable SKILL.md are ignored; discovery lists what is there, validation
// judges it.
func (d *Discovery) Discover() ([]*Skill, error) {
	byName := make(map[string]*Skill)

	for _, root := range d.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			dir := filepath.Join(root, entry.Name())
			skill, err := loadSkill(dir)
			if err != nil {
				continue
			}
			if _, exists := byName[skill.Name]; !exists {
				byName[skill.Name] = skill
			}
		}
	}

	skills := make([]*Skill, 0, len(byName))
	for _, s := range byName {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}

// loadSkill reads a skill from its directory. The skill's name is taken from
// frontmatter, falling back to the directory name if absent.
func loadSkill(dir string) (*Skill, error) {
	content, err := os.ReadFile(filepath.Join(dir, SkillFileName))
	if err != nil {
		return nil, err
	}

	fm, body, err := parseSkillFile(content)
	if err != nil {
		return nil, err
	}

	name := fm.Name
	if name == "" {
		name = filepath.Base(dir)
	}

	return &Skill{
		Name:        name,
		Description: fm.Description,
		Directory:   dir,
		Content:     body,
	}, nil
}
