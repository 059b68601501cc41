package models

// Stats is a consistent snapshot of the aggregate counters.
type Stats struct {
	TotalUsers           int64
	TotalScans           int64
	TotalDisclosuresSent int64
}
