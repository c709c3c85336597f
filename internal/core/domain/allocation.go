package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTargetAmount = errors.New("target amount must be a positive integer")
	ErrInvalidTotalWeeks   = errors.New("total weeks must be a positive integer")
)

// Allocate splits targetAmount into totalWeeks weekly deposits that grow
// linearly with the week number and add up to targetAmount exactly.
//
// The unit is targetAmount divided by the triangular number of totalWeeks,
// rounded half away from zero. Weeks 1..N-1 receive unit*week and the last
// week absorbs the remainder, never dropping below one unit. When the rounded
// unit is too large for the remainder to cover the last week, the unit is
// floored instead so the total stays exact.
func Allocate(targetAmount, totalWeeks int) ([]int, error) {
	if targetAmount <= 0 {
		return nil, ErrInvalidTargetAmount
	}
	if totalWeeks <= 0 {
		return nil, ErrInvalidTotalWeeks
	}

	target := decimal.NewFromInt(int64(targetAmount))
	tri := decimal.NewFromInt(int64(totalWeeks) * int64(totalWeeks+1) / 2)
	ratio := target.Div(tri)

	unit := int(ratio.Round(0).IntPart())
	if progressiveSum(unit, totalWeeks-1)+unit > targetAmount {
		unit = int(ratio.Floor().IntPart())
	}

	amounts := make([]int, totalWeeks)
	running := 0
	for w := 1; w < totalWeeks; w++ {
		amounts[w-1] = unit * w
		running += amounts[w-1]
	}

	last := targetAmount - running
	if last < unit {
		last = unit
	}
	amounts[totalWeeks-1] = last

	return amounts, nil
}

func progressiveSum(unit, weeks int) int {
	return unit * weeks * (weeks + 1) / 2
}
