package skills

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// CatalogFileName is the generated catalog file.
const CatalogFileName = "skills.json"

// CatalogEntry is one skill's record in the catalog.
type CatalogEntry struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Path          string   `json:"path"`
	Version       string   `json:"version,omitempty"`
	License       string   `json:"license,omitempty"`
	Compatibility string   `json:"compatibility,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Catalog is the generated skills.json document.
type Catalog struct {
	Skills []CatalogEntry `json:"skills"`
}

// marketplaceInfo is the optional marketplace.json sitting next to a SKILL.md.
type marketplaceInfo struct {
	Version string   `json:"version"`
	Tags    []string `json:"tags"`
}

// BuildCatalog scans root for skills and assembles the catalog, sorted by
// name. Unlike discovery, cataloging is strict: a skill without the required
// frontmatter fields fails the build.
func BuildCatalog(root string) (*Catalog, error) {
	files, err := FindSkillFiles(root)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{Skills: []CatalogEntry{}}
	for _, file := range files {
		entry, err := buildEntry(root, file)
		if err != nil {
			return nil, err
		}
		catalog.Skills = append(catalog.Skills, entry)
	}

	sort.Slice(catalog.Skills, func(i, j int) bool {
		return catalog.Skills[i].Name < catalog.Skills[j].Name
	})
	return catalog, nil
}

func buildEntry(root, skillFile string) (CatalogEntry, error) {
	content, err := os.ReadFile(skillFile)
	if err != nil {
		return CatalogEntry{}, errors.Wrapf(err, "failed to read %s", skillFile)
	}

	fm, _, err := parseSkillFile(content)
	if err != nil {
		return CatalogEntry{}, errors.Wrapf(err, "%s", skillFile)
	}
	if fm.Name == "" || fm.Description == "" {
		return CatalogEntry{}, errors.Errorf("%s: missing required frontmatter fields", skillFile)
	}

	skillDir := filepath.Dir(skillFile)
	relDir, err := filepath.Rel(root, skillDir)
	if err != nil {
		return CatalogEntry{}, errors.Wrapf(err, "failed to relativize %s", skillDir)
	}

	entry := CatalogEntry{
		Name:          fm.Name,
		Description:   fm.Description,
		Path:          filepath.ToSlash(relDir),
		Version:       fm.Version,
		License:       fm.License,
		Compatibility: fm.Compatibility,
	}

	market := readMarketplace(skillDir)
	if entry.Version == "" {
		entry.Version = market.Version
	}
	entry.Tags = market.Tags

	return entry, nil
}

// readMarketplace reads the optional marketplace.json beside a skill.
// A missing or malformed file yields zero values.
func readMarketplace(skillDir string) marketplaceInfo {
	var info marketplaceInfo
	data, err := os.ReadFile(filepath.Join(skillDir, "marketplace.json"))
	if err != nil {
		return info
	}
	_ = json.Unmarshal(data, &info)
	return info
}

// Render serializes the catalog the way it is written to disk.
func (c *Catalog) Render() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize catalog")
	}
	return append(data, '\n'), nil
}

// Write renders the catalog to outPath.
func (c *Catalog) Write(outPath string) error {
	data, err := c.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", outPath)
	}
	return nil
}

// Check verifies that outPath exists and matches the rendered catalog.
func (c *Catalog) Check(outPath string) error {
	data, err := c.Render()
	if err != nil {
		return err
	}

	existing, err := os.ReadFile(outPath)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%s does not exist", outPath)
		}
		return errors.Wrapf(err, "failed to read %s", outPath)
	}

	if !bytes.Equal(existing, data) {
		return errors.Errorf("%s is out of date", outPath)
	}
	return nil
}
