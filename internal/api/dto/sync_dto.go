package dto

// SyncQuery is the poll of the volunteer dashboard.
type SyncQuery struct {
	Since int64 `query:"since"`
}
