package domain

import "time"

// Entry is a single journal record. Content is markup-bearing free text
// (the client editor produces HTML fragments).
//
// Date holds the calendar day (time-of-day part is zero); Time is the wall
// clock moment in "15:04:05" form, matching the DATE and TIME columns the
// record is stored in.
type Entry struct {
	ID         int64
	OwnerLogin string
	Title      string
	Content    string
	MoodID     int64
	FolderID   int64
	Date       time.Time
	Time       string

	Tags       []CatalogItem
	Activities []CatalogItem
	Emotions   []CatalogItem
}

// MoodSample is one mood data point for the statistics views.
type MoodSample struct {
	EntryID int64
	MoodID  int64
	Date    time.Time
}
