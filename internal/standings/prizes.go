package standings

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yourusername/ekiden-tracker/internal/models"
)

// prizePrecision is the decimal precision at which leg-prize averages are
// compared. Averages of one-decimal daily readings produce floating-point
// near-duplicates; ties are decided on the rounded value everywhere.
const prizePrecision = 3

// PrizeRow is one row of a finished leg's prize table
type PrizeRow struct {
	RunnerName      string  `json:"runnerName"`
	TeamID          int     `json:"teamId"`
	AverageDistance float64 `json:"averageDistance"`
	AverageDisplay  string  `json:"averageDisplay"`
	Rank            int     `json:"rank"`
}

// FinishedLegs returns, in ascending order, every leg that all competing
// teams have advanced past. The non-competing reference entry does not hold
// a leg back. Legs beyond the configured boundary count are excluded.
func FinishedLegs(report *models.LiveReport, boundaries models.LegBoundaries) []int {
	if report == nil {
		return nil
	}
	minLeg := 0
	for _, t := range report.Teams {
		if !t.IsRanked() {
			continue
		}
		if minLeg == 0 || t.CurrentLeg < minLeg {
			minLeg = t.CurrentLeg
		}
	}

	var legs []int
	for leg := 1; leg < minLeg && leg <= boundaries.Legs(); leg++ {
		legs = append(legs, leg)
	}
	return legs
}

// ComputeLegPrizes builds the prize table for each finished leg: every
// runner's average distance over all of their records on that leg, ranked
// descending. A runner substituted out and back in runs non-contiguous days
// on the same leg; all of them count toward the average.
func ComputeLegPrizes(results models.IndividualResults, finishedLegs []int) map[int][]PrizeRow {
	prizes := make(map[int][]PrizeRow, len(finishedLegs))
	for _, leg := range finishedLegs {
		rows := legPrizeTable(results, leg)
		if len(rows) > 0 {
			prizes[leg] = rows
		}
	}
	return prizes
}

func legPrizeTable(results models.IndividualResults, leg int) []PrizeRow {
	var rows []PrizeRow
	for name, runner := range results {
		records := runner.RecordsForLeg(leg)
		if len(records) == 0 {
			continue
		}
		total := decimal.Zero
		for _, rec := range records {
			total = total.Add(decimal.NewFromFloat(rec.Distance))
		}
		average := total.Div(decimal.NewFromInt(int64(len(records)))).Round(prizePrecision)
		avg, _ := average.Float64()
		rows = append(rows, PrizeRow{
			RunnerName:      name,
			TeamID:          runner.TeamID,
			AverageDistance: avg,
			AverageDisplay:  average.StringFixed(prizePrecision),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].AverageDistance != rows[j].AverageDistance {
			return rows[i].AverageDistance > rows[j].AverageDistance
		}
		return rows[i].RunnerName < rows[j].RunnerName
	})

	// A new rank starts only when the rounded average changes.
	lastDisplay := ""
	lastRank := 0
	for i := range rows {
		if rows[i].AverageDisplay != lastDisplay {
			lastRank = i + 1
			lastDisplay = rows[i].AverageDisplay
		}
		rows[i].Rank = lastRank
	}
	return rows
}
