package feed

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// HaversineKM returns the great-circle distance between two lat/lon
// points, in kilometers.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// CumulativeDistancesKM returns, for an ordered sequence of (lat, lon)
// points, the running great-circle distance from the first point to
// each point in turn. len(result) == len(points); result[0] == 0.
func CumulativeDistancesKM(points [][2]float64) []float64 {
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + HaversineKM(points[i-1][0], points[i-1][1], points[i][0], points[i][1])
	}
	return cum
}

// Projection is the result of projecting a point onto the nearest
// segment of a polyline: the segment it falls closest to, the
// interpolation fraction along that segment, and the straight-line
// distance in meters from the point to its nearest point on the
// polyline (an approximation adequate at GTFS shape-matching scales,
// since the projection uses a local equirectangular approximation
// rather than full geodesic math).
type Projection struct {
	SegmentIndex int
	T            float64
	DistanceM    float64
}

// ProjectOntoPolyline finds the polyline segment nearest to point and
// returns the projection onto it. latLonPoints and polyline must use the
// same (lat, lon) convention; equirectangular projection is applied
// around the latitude of the polyline's middle point so that r2's Euclidean
// distance is meaningful at the scale of a single shape.
func ProjectOntoPolyline(point [2]float64, polyline [][2]float64) (Projection, bool) {
	if len(polyline) == 0 {
		return Projection{}, false
	}
	if len(polyline) == 1 {
		d := HaversineKM(point[0], point[1], polyline[0][0], polyline[0][1]) * 1000
		return Projection{SegmentIndex: 0, T: 0, DistanceM: d}, true
	}

	refLat := polyline[len(polyline)/2][0]
	toXY := func(p [2]float64) r2.Vec {
		return r2.Vec{
			X: (p[1] - polyline[0][1]) * math.Cos(refLat*math.Pi/180) * 111320,
			Y: (p[0] - polyline[0][0]) * 110540,
		}
	}
	pt := toXY(point)

	best := Projection{DistanceM: math.Inf(1)}
	for i := 0; i < len(polyline)-1; i++ {
		a := toXY(polyline[i])
		b := toXY(polyline[i+1])
		seg := r2.Sub(b, a)
		segLenSq := seg.X*seg.X + seg.Y*seg.Y
		t := 0.0
		if segLenSq > 0 {
			t = r2.Dot(r2.Sub(pt, a), seg) / segLenSq
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		closest := r2.Add(a, r2.Scale(t, seg))
		dist := r2.Norm(r2.Sub(pt, closest))
		if dist < best.DistanceM {
			best = Projection{SegmentIndex: i, T: t, DistanceM: dist}
		}
	}
	return best, true
}

// InterpolateAlong returns the (lat, lon) point at fraction t along
// segment i of polyline.
func InterpolateAlong(polyline [][2]float64, i int, t float64) [2]float64 {
	a, b := polyline[i], polyline[i+1]
	return [2]float64{
		a[0] + t*(b[0]-a[0]),
		a[1] + t*(b[1]-a[1]),
	}
}
