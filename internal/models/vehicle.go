package models

import "time"

// Vehicle is the opaque payload attached to every map marker.
// The clustering engine carries it through unchanged; only the
// selection consumer (vehicle detail navigation) interprets it.
type Vehicle struct {
	ID         string    `json:"id"`
	Label      string    `json:"label,omitempty"`
	RouteID    string    `json:"routeId,omitempty"`
	TripID     string    `json:"tripId,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Bearing    float64   `json:"bearing,omitempty"`
	Speed      float64   `json:"speed,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
	FeedSource int       `json:"feedSource"`
}
