package model

// CalculationMessage reports a validation or calculation outcome of one mutation.
// ID is its index in the response's message list.
type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Critical messages stop the calculation.
func (m CalculationMessage) Critical() bool {
	return m.Level == LevelCritical
}
