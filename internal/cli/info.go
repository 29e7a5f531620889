package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	appseasons "season-service/internal/app/seasons"
	"season-service/internal/timeutil"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info [sport]",
	Short: "Show the current season, phase, and week for one or all sports.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := appseasons.NewService(openTable(cmd))
		date, err := dateFlag(cmd)
		if err != nil {
			return err
		}

		sports := svc.Sports()
		if len(args) == 1 {
			sports = []string{strings.ToLower(args[0])}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SPORT\tSEASON\tPHASE\tWEEK\tNAME\t")
		for _, sport := range sports {
			info, err := svc.SeasonInfo(sport, "", date)
			if err != nil {
				Log.Warnf("%s: %v", sport, err)
				continue
			}
			week := "-"
			if info.Week > 0 {
				week = fmt.Sprintf("%d", info.Week)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				sport, info.SeasonID, info.Phase, week, info.Name)
		}
		return w.Flush()
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <sport>",
	Short: "List the recorded seasons for a sport.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := openTable(cmd)
		sport := strings.ToLower(args[0])
		ids := table.Seasons(sport)
		if len(ids) == 0 {
			return fmt.Errorf("unknown sport: %s", sport)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "SEASON\tNAME\tPRE-SEASON\tPLAYOFFS END\t")
		for _, id := range ids {
			b, err := table.Get(sport, id)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				id, b.Name, timeutil.FormatDate(b.PreSeasonStart), timeutil.FormatDate(b.PlayoffsEnd))
		}
		return w.Flush()
	},
}

func dateFlag(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("date")
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := timeutil.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date (expected YYYY-MM-DD): %s", raw)
	}
	return parsed, nil
}

func init() {
	infoCmd.Flags().String("date", "", "Resolve as of this date (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
}
