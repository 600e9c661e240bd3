package clip

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SuggestOutputPath derives an output path next to the input video.
// Format: <videoDir>/<videoName>-{HHMMSS}-{HHMMSS}.mkv
func SuggestOutputPath(videoPath string, startSeconds, endSeconds int) string {
	base := filepath.Base(videoPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, " ", "_")

	filename := fmt.Sprintf("%s-%s-%s%s", name, compactTimestamp(startSeconds), compactTimestamp(endSeconds), OutputExtension)
	return filepath.Join(filepath.Dir(videoPath), filename)
}

func compactTimestamp(totalSecs int) string {
	if totalSecs < 0 {
		totalSecs = 0
	}
	hours := totalSecs / 3600
	minutes := (totalSecs % 3600) / 60
	seconds := totalSecs % 60
	return fmt.Sprintf("%02d%02d%02d", hours, minutes, seconds)
}
