package domain

// SiteStats is the aggregate counter block served by the activity stream
// root endpoint. Counts are read-heavy and served through a 1 hour cache.
type SiteStats struct {
	Users        int64 `json:"users"`
	Submissions  int64 `json:"submissions"`
	Comments     int64 `json:"comments"`
	Ratings      int64 `json:"ratings"`
	Tags         int64 `json:"tags"`
	Publishers   int64 `json:"publishers"`
	Flags        int64 `json:"flags"`
	Applications int64 `json:"applications"`
}
