package units

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPayments = errors.New("invalid_monthly_payments")
	ErrNotMonthly      = errors.New("period_not_monthly")
)

// DefaultWorkdays is the yearly workday count assumed by Workdaily periods built without one:
// 11 working months of 22 days.
const DefaultWorkdays = 11 * 22

const weeksPerYear = 52

type periodKind uint8

const (
	kindYearly periodKind = iota
	kindMonthly
	kindWorkdaily
	kindHourly
)

// Period tags how often a Quantity recurs in a year. The zero value is Yearly.
type Period struct {
	kind periodKind
	n    float64
}

var (
	Yearly = Period{kind: kindYearly}
	M11    = Period{kind: kindMonthly, n: 11}
	M12    = Period{kind: kindMonthly, n: 12}
	M14    = Period{kind: kindMonthly, n: 14}
)

// Monthly returns the monthly period paid the given number of times per year.
// Only 11, 12 and 14 payments exist in the modeled pay calendar.
func Monthly(payments int) (Period, error) {
	switch payments {
	case 11:
		return M11, nil
	case 12:
		return M12, nil
	case 14:
		return M14, nil
	}
	return Period{}, fmt.Errorf("%w: %d", ErrInvalidPayments, payments)
}

// Workdaily is paid once per working day; days <= 0 selects DefaultWorkdays.
func Workdaily(days int) Period {
	if days <= 0 {
		days = DefaultWorkdays
	}
	return Period{kind: kindWorkdaily, n: float64(days)}
}

func Hourly(hoursPerWeek float64) Period {
	return Period{kind: kindHourly, n: hoursPerWeek}
}

// RatioToYearly is the factor converting a value in this period into a yearly value.
func (p Period) RatioToYearly() float64 {
	switch p.kind {
	case kindMonthly, kindWorkdaily:
		return p.n
	case kindHourly:
		return p.n * weeksPerYear
	default:
		return 1
	}
}

func (p Period) IsYearly() bool { return p.kind == kindYearly }

func (p Period) IsMonthly() bool { return p.kind == kindMonthly }

// Payments is the number of monthly payments per year, or 0 for non-monthly periods.
func (p Period) Payments() int {
	if p.kind != kindMonthly {
		return 0
	}
	return int(p.n)
}

func (p Period) String() string {
	switch p.kind {
	case kindMonthly:
		return fmt.Sprintf("monthly(%d)", int(p.n))
	case kindWorkdaily:
		return fmt.Sprintf("workdaily(%d)", int(p.n))
	case kindHourly:
		return fmt.Sprintf("hourly(%g)", p.n)
	default:
		return "yearly"
	}
}
