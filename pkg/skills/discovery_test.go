package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "debugging", validSkillDoc("debugging"))
	writeSkill(t, root, "code-review", validSkillDoc("code-review"))

	d, err := NewDiscovery(root)
	require.NoError(t, err)

	skills, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, "code-review", skills[0].Name)
	assert.Equal(t, "debugging", skills[1].Name)
	assert.Equal(t, "A useful skill", skills[0].Description)
	assert.Contains(t, skills[0].Content, "Do the thing well.")
}

func TestDiscoverEarlierRootWins(t *testing.T) {
	local := t.TempDir()
	global := t.TempDir()
	writeSkill(t, local, "code-review", "---\nname: code-review\ndescription: local copy\n---\nbody\n")
	writeSkill(t, global, "code-review", "---\nname: code-review\ndescription: global copy\n---\nbody\n")

	d, err := NewDiscovery(local, global)
	require.NoError(t, err)

	skills, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "local copy", skills[0].Description)
}

func TestDiscoverIgnoresInvalidDirectories(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "good-skill", validSkillDoc("good-skill"))
	writeSkill(t, root, "no-frontmatter", "# just markdown\n")

	d, err := NewDiscovery(root)
	require.NoError(t, err)

	skills, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "good-skill", skills[0].Name)
}

func TestDiscoverMissingRoot(t *testing.T) {
	d, err := NewDiscovery("/nonexistent/skills/root")
	require.NoError(t, err)

	skills, err := d.Discover()
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestDiscoverNameFallsBackToDirectory(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "dir-named", "---\ndescription: nameless\n---\nbody\n")

	d, err := NewDiscovery(root)
	require.NoError(t, err)

	skills, err := d.Discover()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "dir-named", skills[0].Name)
}
