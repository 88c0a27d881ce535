package domain

import (
	"math"

	"github.com/golang/geo/r3"
)

// Nearest returns the index of the point closest to pick, or false when
// points is empty or the closest point is farther than maxDistance.
//
// The scan is linear; scenes hold at most a few hundred points. Only a strictly
// smaller distance replaces the current best, so the earliest point wins ties.
// Points whose distance is NaN never match.
func Nearest(pick r3.Vector, points []ScenePoint, maxDistance float64) (int, bool) {
	best := -1
	var bestDist float64
	for i := range points {
		d := pick.Distance(points[i].Position)
		if best < 0 {
			if !math.IsNaN(d) {
				best, bestDist = i, d
			}
			continue
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || !(bestDist <= maxDistance) {
		return 0, false
	}
	return best, true
}
