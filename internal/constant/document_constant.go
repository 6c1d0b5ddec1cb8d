package constant

const (
	// Relative-time display label for things that changed just now. The UI
	// renders these labels verbatim.
	LabelJustNow = "刚刚"
)
