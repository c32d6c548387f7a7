package leads

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrInvalidInput is returned when calculator inputs are out of range
var ErrInvalidInput = errors.New("please enter valid numbers")

const (
	weeksPerMonth = 4

	// closeRate is the share of recovered leads assumed to convert
	closeRate = 0.5
)

// Inputs are the three calculator fields
type Inputs struct {
	AvgJobValue   float64
	LeadsPerWeek  float64
	PercentMissed float64
}

// numberPrefix matches the leading decimal literal of a form value
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseInputs reads raw form values the way a browser number field is
// read: the longest leading number counts and trailing text is ignored.
// A value with no leading number, or one that is not finite, counts as 0.
func ParseInputs(avgJobValue, leadsPerWeek, percentMissed string) Inputs {
	return Inputs{
		AvgJobValue:   parseNumber(avgJobValue),
		LeadsPerWeek:  parseNumber(leadsPerWeek),
		PercentMissed: parseNumber(percentMissed),
	}
}

func parseNumber(s string) float64 {
	lit := numberPrefix.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if lit == "" {
		return 0
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Validate checks leads and job value are positive and the percentage is
// within [0, 100].
func (in Inputs) Validate() error {
	switch {
	case in.LeadsPerWeek <= 0:
		return fmt.Errorf("%w: leads per week must be positive", ErrInvalidInput)
	case in.AvgJobValue <= 0:
		return fmt.Errorf("%w: average job value must be positive", ErrInvalidInput)
	case in.PercentMissed < 0 || in.PercentMissed > 100:
		return fmt.Errorf("%w: percent missed must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

// MissedPerMonth is the number of leads lost each month
func (in Inputs) MissedPerMonth() float64 {
	return in.LeadsPerWeek * weeksPerMonth * (in.PercentMissed / 100)
}

// MonthlyLoss estimates revenue lost to missed leads each month
func (in Inputs) MonthlyLoss() float64 {
	return in.MissedPerMonth() * in.AvgJobValue * closeRate
}

// FormatUSD renders v as whole dollars with comma grouping, e.g. $12,500
func FormatUSD(v float64) string {
	rounded := math.Round(v)
	if rounded < 0 {
		return "-$" + humanize.Comma(int64(-rounded))
	}
	return "$" + humanize.Comma(int64(rounded))
}

// Summary reports the estimate for display
func (in Inputs) Summary() string {
	return fmt.Sprintf("Missed leads per month: %s\nEstimated monthly revenue loss: %s",
		humanize.Commaf(in.MissedPerMonth()), FormatUSD(in.MonthlyLoss()))
}
