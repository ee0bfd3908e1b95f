package ports

// ProgressReporter shows pass progress to the user.
type ProgressReporter interface {
	// Report shows a step message and a completion ratio in [0, 1].
	Report(message string, ratio float64)
	// Clear removes the progress display.
	Clear()
}
