package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops
	// secondary fields.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width for showing the API host.
	LayoutWideWidth = 120
)

// chromeHeight is the number of rows taken by the header and command bar.
const chromeHeight = 2

// DefaultUIInterval is how often the UI re-reads the controller snapshot.
const DefaultUIInterval = 500 * time.Millisecond
