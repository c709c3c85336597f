package domain

import "github.com/shopspring/decimal"

type ProgressStats struct {
	GoalID             string  `json:"goalId"`
	TotalWeeks         int     `json:"totalWeeks"`
	TargetAmount       int     `json:"targetAmount"`
	Currency           string  `json:"currency"`
	CompletedCount     int     `json:"completedCount"`
	PendingCount       int     `json:"pendingCount"`
	TotalSaved         int     `json:"totalSaved"`
	Remaining          int     `json:"remaining"`
	ProgressPercentage float64 `json:"progressPercentage"`
	NextWeek           int     `json:"nextWeek"`
	NextAmount         *int    `json:"nextAmount,omitempty"`
	AvailableAmounts   []int   `json:"availableAmounts"`
	IsFinished         bool    `json:"isFinished"`
}

// ComputeStats derives the progress summary of a goal from its week records.
// Records are expected in week order.
func ComputeStats(goal *Goal, weeks []*WeekProgress) ProgressStats {
	stats := ProgressStats{
		GoalID:           goal.ID,
		TotalWeeks:       goal.TotalWeeks,
		TargetAmount:     goal.TargetAmount,
		Currency:         goal.Currency,
		AvailableAmounts: []int{},
	}

	for _, w := range weeks {
		if w.IsCompleted {
			stats.CompletedCount++
			stats.TotalSaved += w.Amount
			continue
		}
		stats.AvailableAmounts = append(stats.AvailableAmounts, w.Amount)
	}

	stats.PendingCount = goal.TotalWeeks - stats.CompletedCount
	stats.Remaining = goal.TargetAmount - stats.TotalSaved
	stats.IsFinished = stats.PendingCount == 0

	stats.NextWeek = stats.CompletedCount + 1
	if stats.NextWeek > goal.TotalWeeks {
		stats.NextWeek = goal.TotalWeeks
	}

	// nextAmount follows the week slot, not the first pending record.
	if !stats.IsFinished {
		for _, w := range weeks {
			if w.WeekNumber == stats.NextWeek {
				amount := w.Amount
				stats.NextAmount = &amount
				break
			}
		}
	}

	if goal.TotalWeeks > 0 {
		stats.ProgressPercentage = decimal.NewFromInt(int64(stats.CompletedCount)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(goal.TotalWeeks))).
			Round(2).
			InexactFloat64()
	}

	return stats
}
