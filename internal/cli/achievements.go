package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stride-labs/stride/internal/daemon"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements and unlock status",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	p := d.Engine.Progress()
	defs := d.Engine.Achievements()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tACHIEVEMENT\tREWARD\tDESCRIPTION")
	unlocked := 0
	for _, def := range defs {
		mark := " "
		if p.HasUnlocked(def.ID) {
			mark = "*"
			unlocked++
		}
		fmt.Fprintf(w, "%s\t%s %s\t%d XP\t%s\n",
			mark, def.Icon, def.Name, def.XPReward, def.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d / %d unlocked\n", unlocked, len(defs))
	return nil
}
