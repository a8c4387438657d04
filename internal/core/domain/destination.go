package domain

// Destination groups a document's internal navigation points that share
// an exact (left, top, page) location, together with every name mapping
// to that location. Destinations are computed fresh from a document's
// navigation table each time a derivative is built; never persisted.
type Destination struct {
	Left  float64
	Top   float64
	Page  int
	Names []string
}
