package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/platewatch/platewatch/internal/store"
)

var (
	reportsTarget string
	reportsLimit  int
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect saved reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		summaries, err := st.ListReports(cmd.Context(), store.ReportFilter{
			TargetName: reportsTarget,
			Limit:      reportsLimit,
		})
		if err != nil {
			return err
		}

		p := message.NewPrinter(language.English)
		if len(summaries) == 0 {
			p.Printf("no saved reports\n")
			return nil
		}
		for _, s := range summaries {
			p.Printf("%s  %-25s %-15s %-8s %s\n",
				s.ID, s.TargetName, s.TargetCity, s.OverallThreatLevel,
				s.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(cmd.Context()); err != nil {
			return err
		}

		report, err := st.GetReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsTarget, "target", "", "filter by target name")
	reportsListCmd.Flags().IntVar(&reportsLimit, "limit", 20, "max rows")
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}
