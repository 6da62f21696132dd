package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/skillsync/skillsync/pkg/installer"
	"github.com/skillsync/skillsync/pkg/manifest"
	"github.com/skillsync/skillsync/pkg/presenter"
	"github.com/skillsync/skillsync/pkg/source"
)

// defaultRepoURL is the canonical skills repository. SKILLSYNC_REPO overrides it.
const defaultRepoURL = "https://github.com/skillsync/skills.git"

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install skills from the skills repository",
	Long: `Install the release manifest's skills from their source branches into a
local directory. Each skill becomes <dir>/<name>/SKILL.md plus an optional
references/ subdirectory. Re-running overwrites previous installations.

The destination is chosen, in order of precedence:
  1. SKILLSYNC_SKILLS_DIR environment variable
  2. --global (~/.skillsync/skills) or --local (./.skillsync/skills)
  3. an interactive prompt, defaulting to global

Examples:
  skillsync install --global
  skillsync install --local
  SKILLSYNC_SKILLS_DIR=/opt/skills skillsync install
  skillsync install --manifest custom.yaml`,
	Args: cobra.NoArgs,
	Run:  runInstall,
}

func init() {
	installCmd.Flags().BoolP("global", "g", false, "Install to the per-user directory (~/.skillsync/skills)")
	installCmd.Flags().BoolP("local", "l", false, "Install to the project directory (./.skillsync/skills)")
	installCmd.Flags().String("manifest", "", "Path to a YAML manifest overriding the built-in one")
	installCmd.MarkFlagsMutuallyExclusive("global", "local")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()

	mode := installer.ModeUnset
	if global, _ := cmd.Flags().GetBool("global"); global {
		mode = installer.ModeGlobal
	}
	if local, _ := cmd.Flags().GetBool("local"); local {
		mode = installer.ModeLocal
	}

	dest, err := installer.ResolveDestination(mode, viper.GetString("skills_dir"), presenter.Prompt)
	if err != nil {
		// No artifact can succeed without a writable destination; abort
		// before attempting any.
		presenter.Error(err, "Failed to prepare destination directory")
		os.Exit(1)
	}

	m := manifest.Default()
	if manifestPath, _ := cmd.Flags().GetString("manifest"); manifestPath != "" {
		m, err = manifest.Load(manifestPath)
		if err != nil {
			presenter.Error(err, "Failed to load manifest")
			os.Exit(1)
		}
	}

	repoURL := viper.GetString("repo")
	if repoURL == "" {
		repoURL = defaultRepoURL
	}

	presenter.Info(fmt.Sprintf("Installing %d skills from %s", m.Total(), repoURL))
	presenter.Info(fmt.Sprintf("Destination: %s", dest))

	inst := installer.New(source.NewGitLocator(repoURL), dest)
	report := installer.Run(ctx, m, inst)

	renderReport(report, dest)

	if code := report.ExitCode(); code != 0 {
		os.Exit(code)
	}
}

func renderReport(report *installer.Report, dest string) {
	for _, group := range report.ByBranch() {
		presenter.Separator()
		presenter.Section(fmt.Sprintf("Branch %s", group.Branch))

		for _, out := range group.Outcomes {
			switch out.Status {
			case installer.StatusInstalled:
				presenter.Success(fmt.Sprintf("%s (%s)", out.Name, referenceCount(out.ReferenceFileCount)))
			case installer.StatusInstalledWithWarnings:
				presenter.Warning(fmt.Sprintf("%s installed with warnings (%s)", out.Name, referenceCount(out.ReferenceFileCount)))
				for _, warning := range out.Warnings {
					presenter.Info(fmt.Sprintf("  - %s", warning))
				}
			case installer.StatusSkipped:
				if out.Err != nil {
					presenter.Error(out.Err, fmt.Sprintf("%s could not be fetched", out.Name))
				} else {
					presenter.Info(fmt.Sprintf("%s: not found on branch %s, skipped", out.Name, out.Branch))
				}
			}
		}
	}

	installed, warned, skipped := report.Counts()
	presenter.Separator()
	presenter.Info(fmt.Sprintf("%d installed, %d installed with warnings, %d skipped", installed, warned, skipped))

	if installed+warned > 0 {
		presenter.Info(fmt.Sprintf("Skills installed under %s. Run 'skillsync list' to see them.", dest))
	} else {
		presenter.Warning("No skills could be installed.")
	}
}

func referenceCount(n int) string {
	if n == 1 {
		return "1 reference file"
	}
	return fmt.Sprintf("%d reference files", n)
}
