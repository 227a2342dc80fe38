package units

import "fmt"

// YearlyPlan splits a year of monthly payments into the regular paycheck, the
// vacation allowance paid once and the Christmas allowance counted twice.
type YearlyPlan struct {
	Regular  Money `json:"regular"`
	Vacation Money `json:"vacation"`
	Bonus    Money `json:"bonus"`
}

// AddMonthly routes a monthly quantity into the buckets its payment count covers:
// 11 payments only the regular one, 12 adds vacation, 14 adds the bonus as well.
func (p *YearlyPlan) AddMonthly(q Quantity) error {
	if !q.Period().IsMonthly() {
		return fmt.Errorf("%w: %s", ErrNotMonthly, q.Period())
	}
	v := q.Value()
	switch q.Period().Payments() {
	case 14:
		p.Bonus += v
		fallthrough
	case 12:
		p.Vacation += v
		fallthrough
	case 11:
		p.Regular += v
	default:
		return fmt.Errorf("%w: %d", ErrInvalidPayments, q.Period().Payments())
	}
	return nil
}

// PlanOf builds a plan from monthly quantities.
func PlanOf(qs ...Quantity) (YearlyPlan, error) {
	var p YearlyPlan
	for _, q := range qs {
		if err := p.AddMonthly(q); err != nil {
			return YearlyPlan{}, err
		}
	}
	return p, nil
}

func (p YearlyPlan) YearlyTotal() Quantity {
	return PerYear(p.Regular.Mul(11) + p.Vacation + p.Bonus.Mul(2))
}

func (p YearlyPlan) Add(o YearlyPlan) YearlyPlan {
	return YearlyPlan{Regular: p.Regular + o.Regular, Vacation: p.Vacation + o.Vacation, Bonus: p.Bonus + o.Bonus}
}

func (p YearlyPlan) Sub(o YearlyPlan) YearlyPlan {
	return YearlyPlan{Regular: p.Regular - o.Regular, Vacation: p.Vacation - o.Vacation, Bonus: p.Bonus - o.Bonus}
}

func (p YearlyPlan) Scale(f float64) YearlyPlan {
	return YearlyPlan{Regular: p.Regular.Mul(f), Vacation: p.Vacation.Mul(f), Bonus: p.Bonus.Mul(f)}
}

func (p YearlyPlan) Map(f func(Money) Money) YearlyPlan {
	return YearlyPlan{Regular: f(p.Regular), Vacation: f(p.Vacation), Bonus: f(p.Bonus)}
}

// MapErr applies f to each bucket and stops at the first error.
func (p YearlyPlan) MapErr(f func(Money) (Money, error)) (YearlyPlan, error) {
	var out YearlyPlan
	var err error
	if out.Regular, err = f(p.Regular); err != nil {
		return YearlyPlan{}, err
	}
	if out.Vacation, err = f(p.Vacation); err != nil {
		return YearlyPlan{}, err
	}
	if out.Bonus, err = f(p.Bonus); err != nil {
		return YearlyPlan{}, err
	}
	return out, nil
}
