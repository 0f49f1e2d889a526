package store

import "time"

// TimestampLayout is the ISO-8601 form used for feedback timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000"

type FeedbackRecord struct {
	Query     string `json:"query"`
	Response  string `json:"response"` // raw model text, before HTML conversion
	Helpful   bool   `json:"helpful"`
	Timestamp string `json:"timestamp"`
}

// NewFeedbackRecord stamps a record with the given time.
func NewFeedbackRecord(query, response string, helpful bool, at time.Time) FeedbackRecord {
	return FeedbackRecord{
		Query:     query,
		Response:  response,
		Helpful:   helpful,
		Timestamp: at.Format(TimestampLayout),
	}
}
