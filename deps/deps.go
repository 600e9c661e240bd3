package deps

import (
	"fmt"
	"os/exec"
)

const FfmpegInstallURL = "https://ffmpeg.org/download.html"

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckFfmpeg checks that the ffmpeg binary at path (a name looked up in
// PATH, or an explicit file) is available. An empty path means "ffmpeg".
func CheckFfmpeg(path string) error {
	if path == "" {
		path = "ffmpeg"
	}
	if _, err := exec.LookPath(path); err != nil {
		return &DependencyError{
			Name:       path,
			InstallURL: FfmpegInstallURL,
		}
	}
	return nil
}
