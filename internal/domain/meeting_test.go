package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"identical intervals", at(0), at(1), at(0), at(1), true},
		{"partial overlap", at(0), at(2), at(1), at(3), true},
		{"contained interval", at(0), at(4), at(1), at(2), true},
		{"touching at boundary", at(0), at(1), at(1), at(2), false},
		{"touching at boundary reversed", at(1), at(2), at(0), at(1), false},
		{"disjoint", at(0), at(1), at(2), at(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			require.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1), "symmetry")
		})
	}
}
