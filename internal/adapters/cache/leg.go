package cache

// Leg is one cached directed travel leg between two named locations.
type Leg struct {
	Meters  int
	Seconds int
}
