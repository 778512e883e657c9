package domain

import "time"

// ReviewEditWindow is how long after creation a review stays mutable.
const ReviewEditWindow = 24 * time.Hour

// IsEditable reports whether a record created at createdAt may still be
// updated or deleted at now. The window is half-open: a record exactly
// ReviewEditWindow old is frozen. A createdAt in the future counts as inside
// the window.
func IsEditable(createdAt, now time.Time) bool {
	return now.Sub(createdAt) < ReviewEditWindow
}
