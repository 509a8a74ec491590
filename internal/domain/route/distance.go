package route

import "math"

// Unit selects the output unit of Distance.
type Unit string

const (
	UnitKilometers Unit = "K"
	UnitMiles      Unit = "M"
	UnitNautical   Unit = "N"
)

const (
	nauticalMilesPerDegree  = 60.0
	statuteMilesPerNautical = 1.1515
	kilometersPerMile       = 1.609344
	nauticalPerMile         = 0.8684
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance between a and b in unit, rounded to the nearest integer.
// Identical points are exactly 0.
func Distance(a, b Point, unit Unit) int {
	return int(math.Round(distance(a, b, unit)))
}

// distance uses the spherical law of cosines on a sphere where one degree of arc is 60 nautical miles.
func distance(a, b Point, unit Unit) float64 {
	if a == b {
		return 0
	}

	radLat1 := degreesToRadians(a.Lat)
	radLat2 := degreesToRadians(b.Lat)
	radTheta := degreesToRadians(a.Lon - b.Lon)

	cosArc := math.Sin(radLat1)*math.Sin(radLat2) +
		math.Cos(radLat1)*math.Cos(radLat2)*math.Cos(radTheta)
	// rounding can push nearly identical points just past 1
	cosArc = math.Max(-1, math.Min(1, cosArc))

	miles := radiansToDegrees(math.Acos(cosArc)) * nauticalMilesPerDegree * statuteMilesPerNautical

	switch unit {
	case UnitKilometers:
		return miles * kilometersPerMile
	case UnitNautical:
		return miles * nauticalPerMile
	default:
		return miles
	}
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func radiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
