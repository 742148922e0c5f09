package handlers

import "strconv"

// parseID parses a positive integer id; 0 means invalid.
func parseID(s string) uint {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0
	}
	return uint(n)
}

// pathID parses a route id segment. A non-numeric segment is reported as
// not-ok so the route can 404 instead of treating it as a missing record.
func pathID(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
