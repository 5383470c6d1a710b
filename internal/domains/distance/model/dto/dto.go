package dto

import "villa/infras/maps"

type DistanceResponse struct {
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DistanceText    string `json:"distance_text"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationText    string `json:"duration_text"`
	DurationSeconds int64  `json:"duration_seconds"`
}

func (r *DistanceResponse) FromRoute(route maps.Route) {
	r.Origin = route.Origin
	r.Destination = route.Destination
	r.DistanceText = route.DistanceText
	r.DistanceMeters = route.DistanceMeters
	r.DurationText = route.DurationText
	r.DurationSeconds = route.DurationSeconds
}
