package irs

// MaxDependentsColumn is the last dependents column of a withholding table, meaning "5 or more".
const MaxDependentsColumn = 5

// Family is the household classification that selects a withholding table and column.
type Family struct {
	Married      bool `json:"married" mapstructure:"married"`
	SingleEarner bool `json:"single_earner" mapstructure:"single_earner"`
	Dependents   int  `json:"dependents" mapstructure:"dependents"`
}

func (f Family) column() int {
	switch {
	case f.Dependents < 0:
		return 0
	case f.Dependents > MaxDependentsColumn:
		return MaxDependentsColumn
	}
	return f.Dependents
}
