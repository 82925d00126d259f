package ai

import "fmt"

// Status is the coarse classification of a reading.
type Status string

const (
	StatusStable         Status = "Stable"
	StatusWarning        Status = "Warning"
	StatusCritical       Status = "Critical"
	StatusUnclassifiable Status = "Unclassifiable"
)

// Color is the severity tag rendered next to the status.
type Color string

const (
	ColorGreen  Color = "Green"
	ColorOrange Color = "Orange"
	ColorRed    Color = "Red"
	ColorGray   Color = "Gray"
)

// Result is the classification of one reading. It is derived on every
// tick and never stored.
//
// Possibilities has set semantics; its order carries no meaning.
type Result struct {
	Strategy      string   `json:"strategy"`
	Status        Status   `json:"status"`
	Color         Color    `json:"color"`
	Message       string   `json:"message"`
	Score         int      `json:"score"`
	Issues        []string `json:"issues"`
	Possibilities []string `json:"possibilities"`
}

func unclassifiable(strategy string, err error) Result {
	return Result{
		Strategy:      strategy,
		Status:        StatusUnclassifiable,
		Color:         ColorGray,
		Message:       fmt.Sprintf("Reading cannot be classified: %v.", err),
		Issues:        []string{},
		Possibilities: []string{},
	}
}
