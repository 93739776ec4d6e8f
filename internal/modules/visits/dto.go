package visits

import "github.com/google/uuid"

// CreateVisitRequest logs a field visit. The display location is resolved
// from the first non-empty source: manual text, geocoded address, raw
// coordinates.
type CreateVisitRequest struct {
	ClientID       *uuid.UUID `json:"client_id"`
	ManualLocation string     `json:"manual_location"`
	GeocodedPlace  string     `json:"geocoded_place"`
	Latitude       *float64   `json:"latitude"`
	Longitude      *float64   `json:"longitude"`
}
