package engine

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseProgress reads ffmpeg's -progress output from r and calls emit with the
// percentage of durationSeconds written so far. One value is emitted per
// progress block, at its closing "progress=" line. Blocks without a usable
// time are skipped.
func ParseProgress(r io.Reader, durationSeconds int, emit func(percent float64)) error {
	scanner := bufio.NewScanner(r)

	var (
		outSeconds float64
		haveTime   bool
	)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}

		switch key {
		case "out_time_us", "out_time_ms":
			// Both keys are microseconds in ffmpeg's output.
			if haveTime {
				continue
			}
			if us, err := strconv.ParseInt(value, 10, 64); err == nil {
				outSeconds = float64(us) / 1e6
				haveTime = true
			}
		case "out_time":
			if haveTime {
				continue
			}
			if secs, ok := parseClock(value); ok {
				outSeconds = secs
				haveTime = true
			}
		case "progress":
			if haveTime && durationSeconds > 0 {
				emit(outSeconds / float64(durationSeconds) * 100)
			}
			haveTime = false
		}
	}
	return scanner.Err()
}

// parseClock parses ffmpeg's HH:MM:SS.micro time notation.
func parseClock(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, false
	}
	return float64(h)*3600 + float64(m)*60 + sec, true
}
