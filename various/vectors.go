package various

import "math"

// Dist2 returns the eucledian distance between two points.
func Dist2(a, b [2]float64) float64 {
	xDiff := a[0] - b[0]
	yDiff := a[1] - b[1]
	return math.Sqrt(xDiff*xDiff + yDiff*yDiff)
}

// Len2 returns the length of the given vector.
func Len2(a [2]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1])
}

// DistToSegment2 returns the distance between a point p and a line
// segment defined by the points v and w. Used for river-proximity scoring
// against a river's polyline, one pair of consecutive cells at a time.
func DistToSegment2(v, w, p [2]float64) float64 {
	l2 := Dist2(v, w)
	if l2 == 0 {
		// If the line segment has a length of 0, we can just return
		// the distance between the point and any of the two line
		// segment points.
		return Dist2(p, v)
	}
	t := math.Max(0, math.Min(1, ((p[0]-v[0])*(w[0]-v[0])+(p[1]-v[1])*(w[1]-v[1]))/(l2*l2)))
	return Dist2(p, [2]float64{v[0] + t*(w[0]-v[0]), v[1] + t*(w[1]-v[1])})
}
