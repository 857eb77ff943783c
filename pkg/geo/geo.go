package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by all distance calculations.
const EarthRadiusMeters = 6371000.0

// Point is an immutable WGS84 coordinate (longitude, latitude) in degrees.
type Point struct {
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

// NewPoint creates a point from longitude and latitude
func NewPoint(lng, lat float64) Point {
	return Point{Lng: lng, Lat: lat}
}

// Slice returns the point as [lng, lat] for GeoJSON-style consumers.
func (p Point) Slice() []float64 {
	return []float64{p.Lng, p.Lat}
}

// Valid reports whether the point is finite and within WGS84 bounds.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lng) || math.IsNaN(p.Lat) || math.IsInf(p.Lng, 0) || math.IsInf(p.Lat, 0) {
		return false
	}
	return p.Lng >= -180 && p.Lng <= 180 && p.Lat >= -90 && p.Lat <= 90
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PathLength sums the Haversine distance between consecutive points.
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1], points[i])
	}
	return total
}

// Bearing returns the initial bearing (forward azimuth) from a to b in
// degrees, normalized to [0, 360).
func Bearing(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	return math.Mod(toDegrees(math.Atan2(y, x))+360, 360)
}

// NormalizeAngle maps an angle difference in degrees into [-180, 180).
// Positive values are clockwise (to the right).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}
