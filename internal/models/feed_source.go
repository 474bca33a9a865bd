package models

// FeedSource represents one GTFS-RT vehicle-position feed that supplies
// markers to the map, plus the optional OneBusAway API endpoint used to
// cross-check the vehicle count reported by the feed.
type FeedSource struct {
	Name               string `json:"name"`
	ID                 int    `json:"id"`
	VehiclePositionUrl string `json:"vehicle_position_url"`
	GtfsRtApiKey       string `json:"gtfs_rt_api_key"`
	GtfsRtApiValue     string `json:"gtfs_rt_api_value"`
	ObaBaseURL         string `json:"oba_base_url"`
	ObaApiKey          string `json:"oba_api_key"`
	AgencyID           string `json:"agency_id"`
}

// NewFeedSource creates a new FeedSource instance.
func NewFeedSource(name string, id int, vehiclePositionUrl, gtfsRtApiKey, gtfsRtApiValue, obaBaseURL, obaApiKey, agencyID string) *FeedSource {
	return &FeedSource{
		Name:               name,
		ID:                 id,
		VehiclePositionUrl: vehiclePositionUrl,
		GtfsRtApiKey:       gtfsRtApiKey,
		GtfsRtApiValue:     gtfsRtApiValue,
		ObaBaseURL:         obaBaseURL,
		ObaApiKey:          obaApiKey,
		AgencyID:           agencyID,
	}
}
