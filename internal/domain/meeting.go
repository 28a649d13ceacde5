package domain

import "time"

type Meeting struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     time.Time  `json:"end_time"`
	TeamID      int64      `json:"team_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Overlaps applies the half-open interval rule: [s1,e1) and [s2,e2)
// collide iff s1 < e2 and e1 > s2, so meetings touching at a boundary
// (end == start) do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}
