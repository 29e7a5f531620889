package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"season-service/internal/monitor"
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor [sports...]",
	Short: "Watch for season, phase, and week transitions and print alerts.",
	Long: `Polls the season table on an interval and reports transitions since the
previous check. With no sports listed, every sport in the table is watched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := openTable(cmd)
		interval, _ := cmd.Flags().GetDuration("interval")
		duration, _ := cmd.Flags().GetDuration("duration")

		sports := make([]string, 0, len(args))
		for _, arg := range args {
			sports = append(sports, strings.ToLower(arg))
		}

		mon := monitor.New(table, sports, interval, nil)
		mon.AddSink(monitor.SinkFunc{SinkName: "stdout", Fn: func(_ context.Context, ev monitor.Event) error {
			Log.Warn(monitor.FormatMessage(ev))
			return nil
		}})

		webhook, _ := cmd.Flags().GetString("webhook")
		if webhook == "" {
			webhook = viper.GetString("webhook_url")
		}
		if webhook != "" {
			mon.AddSink(monitor.NewWebhookSink(webhook))
		}
		slackURL, _ := cmd.Flags().GetString("slack-webhook")
		if slackURL == "" {
			slackURL = viper.GetString("slack_webhook_url")
		}
		if slackURL != "" {
			mon.AddSink(monitor.NewSlackSink(slackURL))
		}

		Log.Infof("monitoring transitions every %s (ctrl-c to stop)", interval)
		mon.Run(cmd.Context(), duration)
		return nil
	},
}

func init() {
	monitorCmd.Flags().Duration("interval", time.Hour, "Poll interval")
	monitorCmd.Flags().Duration("duration", 0, "Stop after this long (0 = run until interrupted)")
	monitorCmd.Flags().String("webhook", "", "POST transition alerts to this URL")
	monitorCmd.Flags().String("slack-webhook", "", "Send transition alerts to this Slack webhook")
	rootCmd.AddCommand(monitorCmd)
}
