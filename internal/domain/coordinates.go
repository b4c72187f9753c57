package domain

// Geographic coordinates (longitude, latitude) for a catalog place.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat], the ordering external routing APIs expect.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
