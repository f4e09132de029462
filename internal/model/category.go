package model

// Category represents a named monthly spending bucket with a budget ceiling.
type Category struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color,omitempty"`
	Budget float64 `json:"budget"` // monthly ceiling, absolute value
}
