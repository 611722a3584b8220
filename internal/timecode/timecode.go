package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// converts "SS[.f]", "MM:SS[.f]" or "H:MM:SS[.f]" into milliseconds.
// the fraction is right-padded to 3 digits and truncated, so "4" is 400ms
// and "4567" is 456ms. groups that do not parse count as zero.
func Parse(s string) int {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 3:
		return atoi(parts[0])*3600_000 + atoi(parts[1])*60_000 + secondsAndMillis(parts[2])
	case 2:
		return atoi(parts[0])*60_000 + secondsAndMillis(parts[1])
	case 1:
		return secondsAndMillis(parts[0])
	default:
		return 0
	}
}

func secondsAndMillis(part string) int {
	sec, frac, hasFrac := strings.Cut(part, ".")
	ms := atoi(sec) * 1000
	if !hasFrac {
		return ms
	}
	if len(frac) < 3 {
		frac += strings.Repeat("0", 3-len(frac))
	}
	return ms + atoi(frac[:3])
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// formats milliseconds as zero-padded HH:MM:SS.mmm, negative input is clamped
func Format(ms int) string {
	if ms < 0 {
		return "00:00:00.000"
	}
	return fmt.Sprintf("%02d:%02d:%02d.%03d",
		ms/3600_000,
		(ms%3600_000)/60_000,
		(ms%60_000)/1000,
		ms%1000,
	)
}

// formats milliseconds as MM:SS.mmm for line-timed tags.
// minutes keep counting past an hour instead of wrapping.
func FormatLRC(ms int) string {
	if ms < 0 {
		ms = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", ms/60_000, (ms%60_000)/1000, ms%1000)
}
