package domain

// Represents a job site a crew has to visit.
// Locations are caller-owned input; routing code only reads them and
// produces new RoutePoint values.
type Location struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	// Minutes of work at the stop once arrived. Zero means no dwell time.
	Duration int
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}
