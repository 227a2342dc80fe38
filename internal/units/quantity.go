package units

import "fmt"

// Quantity is an amount of Money recurring with a Period.
//
// Combining or comparing two quantities with different periods normalizes both
// to Yearly first; the result of such a combination is Yearly. Quantities that
// share a period keep it.
type Quantity struct {
	value  Money
	period Period
}

func NewQuantity(value Money, period Period) Quantity {
	return Quantity{value: value, period: period}
}

// PerYear is shorthand for a Yearly quantity.
func PerYear(value Money) Quantity {
	return Quantity{value: value, period: Yearly}
}

func (q Quantity) Value() Money { return q.value }

func (q Quantity) Period() Period { return q.period }

func (q Quantity) AsYearly() Quantity {
	return Quantity{value: q.value.Mul(q.period.RatioToYearly()), period: Yearly}
}

// ChangePeriod rescales q in place into the target period.
func (q *Quantity) ChangePeriod(target Period) {
	q.value = q.value.Mul(q.period.RatioToYearly() / target.RatioToYearly())
	q.period = target
}

// In returns a copy of q expressed in the target period.
func (q Quantity) In(target Period) Quantity {
	q.ChangePeriod(target)
	return q
}

func (q Quantity) align(o Quantity) (Quantity, Quantity) {
	if q.period == o.period {
		return q, o
	}
	return q.AsYearly(), o.AsYearly()
}

func (q Quantity) Add(o Quantity) Quantity {
	a, b := q.align(o)
	return Quantity{value: a.value + b.value, period: a.period}
}

func (q Quantity) Sub(o Quantity) Quantity {
	a, b := q.align(o)
	return Quantity{value: a.value - b.value, period: a.period}
}

func (q Quantity) Mul(f float64) Quantity {
	return Quantity{value: q.value.Mul(f), period: q.period}
}

func (q Quantity) Div(f float64) Quantity {
	return Quantity{value: q.value.Div(f), period: q.period}
}

func (q Quantity) Neg() Quantity {
	return Quantity{value: -q.value, period: q.period}
}

// Compare returns -1, 0 or 1.
func (q Quantity) Compare(o Quantity) int {
	a, b := q.align(o)
	switch {
	case a.value < b.value:
		return -1
	case a.value > b.value:
		return 1
	}
	return 0
}

func (q Quantity) Equal(o Quantity) bool { return q.Compare(o) == 0 }

func (q Quantity) Less(o Quantity) bool { return q.Compare(o) < 0 }

// Sum adds quantities left to right.
func Sum(qs ...Quantity) Quantity {
	var total Quantity
	for i, q := range qs {
		if i == 0 {
			total = q
			continue
		}
		total = total.Add(q)
	}
	return total
}

func (q Quantity) String() string {
	return fmt.Sprintf("%s %s", q.value, q.period)
}
