// Package guestlist keeps a list of guest-name slots consistent with the
// declared guest count. It is a pure reducer so the same rules serve the
// public form re-render and the admin update path, and it can never fail:
// name content is only judged later, at validation time.
package guestlist

import "wedding-rsvp/core/constants"

// Sync returns the guest-name list for newCount slots. Existing entries keep
// their slot by index; growth appends empty slots; shrinkage truncates and
// the truncated names do not come back. When nothing changes by value, the
// input slice is returned as-is so callers can skip downstream work.
func Sync(current []string, newCount int, attending bool) []string {
	if !attending || newCount <= 0 {
		if len(current) == 0 {
			return current
		}
		return []string{}
	}
	if newCount > constants.MaxGuests {
		newCount = constants.MaxGuests
	}

	if newCount == len(current) {
		return current
	}

	next := make([]string, newCount)
	copy(next, current)
	return next
}

// Edit replaces the name in slot i. Other slots are untouched. Out-of-range
// edits and value-equal edits return the input unchanged.
func Edit(list []string, i int, value string) []string {
	if i < 0 || i >= len(list) || list[i] == value {
		return list
	}
	next := make([]string, len(list))
	copy(next, list)
	next[i] = value
	return next
}
