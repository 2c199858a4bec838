// Package main provides a CLI for generating race reports from a local
// document directory.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/ekiden-tracker/internal/models"
	"github.com/yourusername/ekiden-tracker/internal/provider"
	"github.com/yourusername/ekiden-tracker/internal/standings"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	dataDir string
	appLog  *logrus.Logger
	docs    *provider.FileProvider
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", ".", "Directory holding the race documents")
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(prizesCmd)
	rootCmd.AddCommand(legsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate ekiden race reports from local documents",
	Long:  `Reads the race documents from a local directory and prints standings, leg leaderboards and section prize tables.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appLog = logrus.New()
		appLog.SetLevel(logrus.WarnLevel)
		docs = provider.NewFileProvider(dataDir, provider.DefaultDocumentPaths(), appLog)
		return nil
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Print the overall standings table",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		report, cfg, err := loadReportAndConfig(ctx)
		if err != nil {
			return err
		}

		printStandings(report, cfg.LegBoundaries)
		return nil
	},
}

var prizesCmd = &cobra.Command{
	Use:   "prizes",
	Short: "Print the per-leg section prize tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		report, cfg, err := loadReportAndConfig(ctx)
		if err != nil {
			return err
		}
		results, err := docs.FetchIndividualResults(ctx)
		if err != nil {
			return fmt.Errorf("failed to load individual results: %w", err)
		}

		printPrizes(report, cfg.LegBoundaries, results)
		return nil
	},
}

var legsCmd = &cobra.Command{
	Use:   "legs",
	Short: "Print the leaderboard for every active leg",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		report, cfg, err := loadReportAndConfig(ctx)
		if err != nil {
			return err
		}
		results, err := docs.FetchIndividualResults(ctx)
		if err != nil {
			return fmt.Errorf("failed to load individual results: %w", err)
		}

		printLegLeaderboards(report, cfg.LegBoundaries, results)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadReportAndConfig(ctx context.Context) (*models.LiveReport, *models.RaceConfig, error) {
	report, err := docs.FetchLiveReport(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load live report: %w", err)
	}
	cfg, err := docs.FetchRaceConfig(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load race config: %w", err)
	}
	// A report straight from a raw scoring run may carry no ranks yet;
	// derive them here so every table prints ranked rows.
	if !hasRanks(report) {
		report.Teams = standings.ComputeRanks(report.Teams, cfg.LegBoundaries, report.RaceDay)
	}
	return report, cfg, nil
}

// hasRanks reports whether any team in the live report carries an overall rank.
func hasRanks(report *models.LiveReport) bool {
	for i := range report.Teams {
		if report.Teams[i].IsRanked() {
			return true
		}
	}
	return false
}

func printStandings(report *models.LiveReport, boundaries models.LegBoundaries) {
	rows := standings.BuildStandings(report, boundaries)

	fmt.Printf("\nOverall standings - day %d (updated %s)\n", report.RaceDay, report.UpdateTime)
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("%4s  %-20s %-12s %14s %12s %10s\n",
		"Rank", "Team", "Runner", "Today", "Total", "Gap")
	for _, row := range rows {
		marker := ""
		switch row.RankChange {
		case standings.RankUp:
			marker = "^"
		case standings.RankDown:
			marker = "v"
		}
		fmt.Printf("%3d%-1s  %-20s %-12s %14s %12s %10s\n",
			row.Rank, marker, row.TeamName, row.CurrentRunner,
			row.TodayDisplay, row.TotalDisplay, row.GapDisplay)
	}
	fmt.Println()
}

func printPrizes(report *models.LiveReport, boundaries models.LegBoundaries, results models.IndividualResults) {
	finished := standings.FinishedLegs(report, boundaries)
	if len(finished) == 0 {
		fmt.Println("\nNo leg has been completed by the whole field yet.")
		return
	}

	prizes := standings.ComputeLegPrizes(results, finished)
	for _, leg := range finished {
		fmt.Printf("\nLeg %d section prize (average km/day)\n", leg)
		fmt.Println(strings.Repeat("-", 44))
		for _, row := range prizes[leg] {
			fmt.Printf("%4d  %-20s %10s\n", row.Rank, row.RunnerName, row.AverageDisplay)
		}
	}
	fmt.Println()
}

func printLegLeaderboards(report *models.LiveReport, boundaries models.LegBoundaries, results models.IndividualResults) {
	legs := standings.ActiveLegs(report, boundaries)
	if len(legs) == 0 {
		fmt.Println("\nNo active legs.")
		return
	}

	for _, leg := range legs {
		fmt.Printf("\nLeg %d leaderboard - day %d\n", leg, report.RaceDay)
		fmt.Println(strings.Repeat("-", 56))
		for _, row := range standings.BuildLegLeaderboard(report, results, leg) {
			fmt.Printf("%4d  %-16s %-20s %8.1fkm [%s]\n",
				row.Rank, row.DisplayName, row.TeamName, row.LegDistance, row.State)
		}
	}
	fmt.Println()
}
