package render

import "fmt"

// Warning is a tolerated problem found while rendering.
type Warning struct {
	Component string // "theme", "skill", ...
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Component, w.Message)
}

// Warnings accumulates warnings, dropping exact duplicates.
type Warnings []Warning

// Add appends a formatted warning unless an identical one is present.
func (ws *Warnings) Add(component, format string, args ...any) {
	w := Warning{Component: component, Message: fmt.Sprintf(format, args...)}
	for _, existing := range *ws {
		if existing == w {
			return
		}
	}
	*ws = append(*ws, w)
}
