package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDepthStr parses traversal depth selections like "2", "1-3", or
// "0-2,5" into the set of depths to visit. Entries directly under a scan
// root are at depth 1. An empty string means no depth restriction and
// returns a nil map.
func ParseDepthStr(depthStr string) (map[int]struct{}, error) {
	if depthStr == "" {
		return nil, nil
	}

	depthsMap := map[int]struct{}{}

	for _, component := range strings.Split(depthStr, ",") {
		start, end, err := parseDepthRange(component)
		if err != nil {
			return nil, fmt.Errorf("Invalid depth string %s: %v", depthStr, err)
		}

		for i := start; i <= end; i++ {
			depthsMap[i] = struct{}{}
		}
	}

	return depthsMap, nil
}

func parseDepthRange(component string) (int, int, error) {
	startStr, endStr, isRange := strings.Cut(component, "-")

	start, err := strconv.Atoi(startStr)
	if err != nil || start < 0 {
		return 0, 0, fmt.Errorf("bad depth %q", startStr)
	}

	if !isRange {
		return start, start, nil
	}

	end, err := strconv.Atoi(endStr)
	if err != nil || end < 0 {
		return 0, 0, fmt.Errorf("bad depth %q", endStr)
	}

	if start > end {
		return 0, 0, fmt.Errorf("depth range start %d greater than end %d", start, end)
	}

	return start, end, nil
}
