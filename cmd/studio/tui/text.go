package tui

// UI copy shared by the studio views.
const (
	titleText      = "🎥 CodeReel Studio"
	readyText      = "Ready. Press g to generate a lesson."
	generatingText = "🎬 Generating... renders take a few minutes."
	doneText       = "✅ Lesson finished."
	failedText     = "❌ Generation failed: %s"
	historyHeading = "Recent lessons"
	helpText       = "g generate · u toggle upload · r refresh · q quit"
)
