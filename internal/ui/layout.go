package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which descriptive columns
	// are dropped from tables.
	LayoutCompactWidth = 90
)

// Timing constants.
const (
	// FlashDuration is how long success and error messages stay visible.
	FlashDuration = 3 * time.Second
)

// chromeHeight is the number of lines used by the header, tab bar, command
// bar and status line.
const chromeHeight = 4
