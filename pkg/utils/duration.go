package utils

import (
	"fmt"
	"regexp"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration parses durations such as "PT2H10M" or "P1DT3H" into seconds
func ParseISODuration(value string) (int, error) {
	matches := isoDurationPattern.FindStringSubmatch(value)
	if matches == nil || value == "P" || value == "PT" {
		return 0, fmt.Errorf("invalid ISO-8601 duration %q", value)
	}

	multipliers := []int{86400, 3600, 60, 1}
	total := 0
	for i, multiplier := range multipliers {
		part := matches[i+1]
		if part == "" {
			continue
		}
		total += ParseInt(part) * multiplier
	}
	return total, nil
}
