package pipeline

// UnfittedStateError reports that Predict, Score or Transform was invoked
// on a pipeline or stage before a successful Fit. It is always surfaced;
// an unfitted model must refuse to predict rather than return garbage.
type UnfittedStateError struct {
	Op string
}

func (e *UnfittedStateError) Error() string {
	return "pipeline: " + e.Op + " called before Fit"
}
