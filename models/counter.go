package models

// Counter is a persisted monotonic id source. The next value is
// incremented and saved in the same database transaction that hands the
// id out, so ids are strictly increasing and never reused across
// restarts.
type Counter struct {
	Name string `gorm:"primary_key"`
	Next uint64
}
