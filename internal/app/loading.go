package app

import "time"

// LoadingMessages rotate while an analysis is outstanding.
var LoadingMessages = []string{
	"Analyzing visual data...",
	"Identifying objects and context...",
	"Detecting potential issues...",
	"Searching for solutions...",
	"Estimating repair costs...",
}

const (
	messageInterval  = 2 * time.Second
	progressInterval = 100 * time.Millisecond
	progressCeiling  = 90.0
)

// LoadingMessage returns the message to show after elapsed time.
func LoadingMessage(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	return LoadingMessages[int(elapsed/messageInterval)%len(LoadingMessages)]
}

// LoadingProgress is a simulated percentage that slows down as it climbs and
// never passes 90 until the request settles.
func LoadingProgress(elapsed time.Duration) float64 {
	progress := 0.0
	for ticks := int(elapsed / progressInterval); ticks > 0 && progress < progressCeiling; ticks-- {
		switch {
		case progress < 30:
			progress += 2
		case progress < 60:
			progress++
		default:
			progress += 0.5
		}
	}
	if progress > progressCeiling {
		return progressCeiling
	}
	return progress
}
