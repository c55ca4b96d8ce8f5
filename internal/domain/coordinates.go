package domain

// Immutable geographic coordinates in WGS84 decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}
