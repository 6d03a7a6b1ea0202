package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/platewatch/platewatch/internal/model"
	"github.com/platewatch/platewatch/internal/pipeline"
)

var (
	analyzeName string
	analyzeCity string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one competitive analysis and print the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		report, err := env.Pipeline.Run(ctx, pipeline.Request{Name: analyzeName, City: analyzeCity})
		if err != nil {
			return err
		}

		printReport(report)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "target restaurant name (required)")
	analyzeCmd.Flags().StringVar(&analyzeCity, "city", "", "target city (required)")
	analyzeCmd.MarkFlagRequired("name") //nolint:errcheck
	analyzeCmd.MarkFlagRequired("city") //nolint:errcheck
	rootCmd.AddCommand(analyzeCmd)
}

func printReport(r *model.Report) {
	p := message.NewPrinter(language.English)

	p.Printf("Report %s\n", r.ID)
	p.Printf("Target: %s (%s), rating %.1f, %d reviews\n", r.Target.Name, r.Target.City, r.Target.Rating, r.Target.ReviewCount)
	p.Printf("Category: %s\n", r.Target.PrimaryCategory)
	p.Printf("Threat level: %s (avg top-competitor score %d)\n", r.OverallThreatLevel, r.AverageThreatScore)
	p.Printf("Standing: P%d rating, P%d reviews among %d peers\n\n",
		r.Standing.RatingPercentile, r.Standing.ReviewPercentile, len(r.Peers))

	p.Printf("Top competitors:\n")
	for i, v := range r.TopCompetitors {
		p.Printf("  %d. %-30s  score %3d  %.1f★  %d reviews  %.2f km\n",
			i+1, v.Name, v.ThreatScore, v.Rating, v.ReviewCount, v.DistanceKm)
	}

	if len(r.SameCategoryNearby) > 0 {
		p.Printf("\nSame-category nearby (%s):\n", r.Target.PrimaryCategory)
		for _, v := range r.SameCategoryNearby {
			p.Printf("  - %-30s  category score %3d  %.2f km\n", v.Name, v.CategoryThreatScore, v.DistanceKm)
		}
	}

	if len(r.EmergingVenues) > 0 {
		p.Printf("\nEmerging venues:\n")
		for _, v := range r.EmergingVenues {
			p.Printf("  - %-30s  %.1f★  %d reviews\n", v.Name, v.Rating, v.ReviewCount)
		}
	}

	if len(r.CategoryBreakdown) > 0 {
		p.Printf("\nCategory breakdown:\n")
		for _, c := range r.CategoryBreakdown {
			p.Printf("  %-20s %3d venues  %d votes  avg %.1f★\n",
				c.Category, c.Count, c.TotalReviewVotes, c.AverageRating)
		}
	}

	if r.ExecutiveSummary.Overview != "" {
		fmt.Printf("\n%s\n", r.ExecutiveSummary.Overview)
	}
	if r.StrategicVerdict != "" {
		fmt.Printf("\nVerdict: %s\n", r.StrategicVerdict)
	}
}
