package domain

// AllocatedDate is one calendar day of the run: the YYYY-MM-DD string
// and its start-of-day instant in UTC. Produced once per run by the
// date allocator and never re-derived from message timestamps.
type AllocatedDate struct {
	DateStr  string
	DayStart int64 // unix seconds at 00:00:00 UTC
}
