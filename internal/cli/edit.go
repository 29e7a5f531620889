package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	domainseasons "season-service/internal/domain/seasons"
	"season-service/internal/seasontable"
	"season-service/internal/timeutil"
)

var dateFlags = []struct {
	flag string
	help string
}{
	{"preseason-start", "Pre-season start date (YYYY-MM-DD)"},
	{"regular-start", "Regular season start date (YYYY-MM-DD)"},
	{"regular-end", "Regular season end date (YYYY-MM-DD)"},
	{"playoffs-start", "Playoffs start date (YYYY-MM-DD)"},
	{"playoffs-end", "Playoffs end date (YYYY-MM-DD)"},
}

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <sport> <year>",
	Short: "Add a season to the table. All five boundary dates are required.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := openTable(cmd)
		sport := strings.ToLower(args[0])
		seasonID := args[1]

		var b domainseasons.Boundaries
		dsts := []*time.Time{
			&b.PreSeasonStart, &b.RegularSeasonStart, &b.RegularSeasonEnd,
			&b.PlayoffsStart, &b.PlayoffsEnd,
		}
		for i, df := range dateFlags {
			raw, _ := cmd.Flags().GetString(df.flag)
			if raw == "" {
				return fmt.Errorf("--%s is required", df.flag)
			}
			parsed, err := timeutil.ParseDate(raw)
			if err != nil {
				return fmt.Errorf("invalid --%s: %s", df.flag, raw)
			}
			*dsts[i] = parsed
		}

		b.Name, _ = cmd.Flags().GetString("name")
		if b.Name == "" {
			b.Name = strings.ToUpper(sport) + " " + seasonID
		}
		b.APIBase, _ = cmd.Flags().GetString("api-base")

		if err := table.Put(sport, seasonID, b); err != nil {
			return err
		}
		Log.Infof("added %s season %s", sport, seasonID)
		return nil
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <sport> <year>",
	Short: "Update fields of an existing season. Only supplied flags change.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := openTable(cmd)
		sport := strings.ToLower(args[0])
		seasonID := args[1]

		var patch seasontable.Partial
		touched := false

		dsts := []**time.Time{
			&patch.PreSeasonStart, &patch.RegularSeasonStart, &patch.RegularSeasonEnd,
			&patch.PlayoffsStart, &patch.PlayoffsEnd,
		}
		for i, df := range dateFlags {
			if !cmd.Flags().Changed(df.flag) {
				continue
			}
			raw, _ := cmd.Flags().GetString(df.flag)
			parsed, err := timeutil.ParseDate(raw)
			if err != nil {
				return fmt.Errorf("invalid --%s: %s", df.flag, raw)
			}
			*dsts[i] = &parsed
			touched = true
		}
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			patch.Name = &name
			touched = true
		}
		if cmd.Flags().Changed("api-base") {
			base, _ := cmd.Flags().GetString("api-base")
			patch.APIBase = &base
			touched = true
		}

		if !touched {
			return fmt.Errorf("nothing to update; pass at least one field flag")
		}

		if err := table.Merge(sport, seasonID, patch); err != nil {
			return err
		}
		Log.Infof("updated %s season %s", sport, seasonID)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{addCmd, updateCmd} {
		for _, df := range dateFlags {
			cmd.Flags().String(df.flag, "", df.help)
		}
		cmd.Flags().String("name", "", "Display name for the season")
		cmd.Flags().String("api-base", "", "Upstream API base URL for the season")
	}
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
}
