package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"season-service/internal/forecast"
	"season-service/internal/timeutil"
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict <sport> [year]",
	Short: "Predict season boundary dates for future years.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sport := strings.ToLower(args[0])
		year := time.Now().UTC().Year() + 1
		if len(args) == 2 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = parsed
		}
		count, _ := cmd.Flags().GetInt("count")

		items := forecast.PredictRange(sport, year, count)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "YEAR\tNAME\tPRE-SEASON\tREGULAR\tPLAYOFFS END\t")
		for _, item := range items {
			if item.Err != nil {
				w.Flush()
				return item.Err
			}
			b := item.Prediction.Boundaries
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
				item.Year, b.Name,
				timeutil.FormatDate(b.PreSeasonStart),
				timeutil.FormatDate(b.RegularSeasonStart),
				timeutil.FormatDate(b.PlayoffsEnd))
		}
		return w.Flush()
	},
}

// extendCmd represents the extend command
var extendCmd = &cobra.Command{
	Use:   "extend <sport>",
	Short: "Forecast seasons beyond the last recorded one and save them to the table.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := openTable(cmd)
		sport := strings.ToLower(args[0])
		count, _ := cmd.Flags().GetInt("count")

		added, err := forecast.New(table, nil).AutoExtend(sport, count)
		if err != nil {
			return err
		}
		for _, p := range added {
			Log.Infof("added %s season %d (%s)", sport, p.Year, p.Boundaries.Name)
		}
		fmt.Printf("extended %s by %d season(s)\n", sport, len(added))
		return nil
	},
}

// trendsCmd represents the trends command
var trendsCmd = &cobra.Command{
	Use:   "trends <sport>",
	Short: "Summarize boundary drift across a sport's recorded seasons.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := openTable(cmd)
		sport := strings.ToLower(args[0])

		trends, err := forecast.New(table, nil).Trends(sport)
		if err != nil {
			return err
		}
		fmt.Printf("sport: %s\n", trends.Sport)
		fmt.Printf("seasons analyzed: %d\n", trends.SeasonsAnalyzed)
		fmt.Printf("avg days between seasons: %.1f\n", trends.AverageGapDays)
		fmt.Printf("consistency: %s\n", trends.Consistency)
		return nil
	},
}

func init() {
	predictCmd.Flags().Int("count", 1, "Number of consecutive years to predict")
	extendCmd.Flags().Int("count", 1, "Number of seasons to append")
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(extendCmd)
	rootCmd.AddCommand(trendsCmd)
}
