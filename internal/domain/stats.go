package domain

// DonorStats aggregates a donor's own listings.
type DonorStats struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Expired   int `json:"expired"`
}

// PlatformStats aggregates listings across the platform.
type PlatformStats struct {
	TotalPosted    int `json:"totalPosted"`
	TotalDelivered int `json:"totalDelivered"`
	TotalExpired   int `json:"totalExpired"`
}

// PublicStats adds community sizes to the platform aggregates.
type PublicStats struct {
	PlatformStats
	Donors     int `json:"donors"`
	Volunteers int `json:"volunteers"`
}
