package timeutil

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var (
	hmsPattern     = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})$`)
	msPattern      = regexp.MustCompile(`^(\d+):(\d{2})$`)
	secondsPattern = regexp.MustCompile(`^\d+$`)
)

// ParseError reports a time string that matched none of the accepted forms,
// or whose value does not fit in an int.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid time format: %s (%v)", e.Raw, e.Err)
	}
	return fmt.Sprintf("invalid time format: %s", e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// ParseTime parses H:MM:SS, M:SS or a bare number of seconds into whole seconds.
// Forms are tried in that order and the whole string must match one of them.
// Minute and second fields must be two digits but are not range checked,
// so "1:99:99" is accepted.
func ParseTime(timeStr string) (int, error) {
	if m := hmsPattern.FindStringSubmatch(timeStr); m != nil {
		return sumFields(timeStr, []string{m[1], m[2], m[3]}, []int{3600, 60, 1})
	}
	if m := msPattern.FindStringSubmatch(timeStr); m != nil {
		return sumFields(timeStr, []string{m[1], m[2]}, []int{60, 1})
	}
	if secondsPattern.MatchString(timeStr) {
		return sumFields(timeStr, []string{timeStr}, []int{1})
	}
	return 0, &ParseError{Raw: timeStr}
}

// sumFields converts each digit field, scales it and adds it to the total,
// failing instead of wrapping around on overflow.
func sumFields(raw string, fields []string, scales []int) (int, error) {
	total := 0
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, &ParseError{Raw: raw, Err: err}
		}
		if n > (math.MaxInt-total)/scales[i] {
			return 0, &ParseError{Raw: raw, Err: strconv.ErrRange}
		}
		total += n * scales[i]
	}
	return total, nil
}
