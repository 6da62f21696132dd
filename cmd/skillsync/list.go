package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillsync/skillsync/pkg/presenter"
	"github.com/skillsync/skillsync/pkg/skills"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all installed skills",
	Long:  `List installed skills from the local and global skills directories with their names, directories, and descriptions.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		discovery, err := skills.NewDiscovery()
		if err != nil {
			presenter.Error(err, "Failed to initialize skill discovery")
			os.Exit(1)
		}

		installed, err := discovery.Discover()
		if err != nil {
			presenter.Error(err, "Failed to discover skills")
			os.Exit(1)
		}

		if len(installed) == 0 {
			presenter.Info("No skills installed. Run 'skillsync install' first.")
			return
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDIRECTORY\tDESCRIPTION")
		fmt.Fprintln(tw, "----\t---------\t-----------")

		for _, skill := range installed {
			description := skill.Description
			if len(description) > 60 {
				description = description[:57] + "..."
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", skill.Name, skill.Directory, description)
		}
		tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
