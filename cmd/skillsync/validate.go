package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillsync/skillsync/pkg/installer"
	"github.com/skillsync/skillsync/pkg/presenter"
	"github.com/skillsync/skillsync/pkg/skills"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Validate installed SKILL.md files",
	Long: `Validate every SKILL.md under a directory against the skill authoring
rules: well-formed frontmatter, a kebab-case name matching its directory,
a description within limits, and a non-empty body.

Defaults to the local skills directory when no directory is given.

Examples:
  skillsync validate
  skillsync validate ~/.skillsync/skills`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		root := installer.LocalRoot()
		if len(args) == 1 {
			root = args[0]
		}

		if err := skills.ValidateTree(root); err != nil {
			presenter.Error(err, "Skill validation failed")
			os.Exit(1)
		}

		files, err := skills.FindSkillFiles(root)
		if err != nil {
			presenter.Error(err, "Failed to scan skills")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Validated %d %s files successfully.", len(files), skills.SkillFileName))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
