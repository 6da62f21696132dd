package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillsync/skillsync/pkg/installer"
	"github.com/skillsync/skillsync/pkg/presenter"
	"github.com/skillsync/skillsync/pkg/skills"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [dir]",
	Short: "Generate the skills.json catalog",
	Long: `Generate skills.json from the SKILL.md files under a directory. Each entry
carries the skill's name, description, path, and any declared version,
license, compatibility, and marketplace tags.

Defaults to the local skills directory when no directory is given.

Examples:
  skillsync catalog
  skillsync catalog --check
  skillsync catalog ~/.skillsync/skills --output /tmp/skills.json`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root := installer.LocalRoot()
		if len(args) == 1 {
			root = args[0]
		}

		catalog, err := skills.BuildCatalog(root)
		if err != nil {
			presenter.Error(err, "Failed to build catalog")
			os.Exit(1)
		}

		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			outPath = filepath.Join(root, skills.CatalogFileName)
		}

		if check, _ := cmd.Flags().GetBool("check"); check {
			if err := catalog.Check(outPath); err != nil {
				presenter.Error(err, "Catalog check failed. Run 'skillsync catalog' to regenerate")
				os.Exit(1)
			}
			presenter.Success(fmt.Sprintf("%s is up to date.", outPath))
			return
		}

		if err := catalog.Write(outPath); err != nil {
			presenter.Error(err, "Failed to write catalog")
			os.Exit(1)
		}
		presenter.Success(fmt.Sprintf("Wrote %s (%d skills)", outPath, len(catalog.Skills)))
	},
}

func init() {
	catalogCmd.Flags().Bool("check", false, "Fail if the catalog file is out of date instead of writing it")
	catalogCmd.Flags().StringP("output", "o", "", "Catalog output path (default <dir>/skills.json)")

	rootCmd.AddCommand(catalogCmd)
}
