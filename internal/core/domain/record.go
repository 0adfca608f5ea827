package domain

import (
	"fmt"
	"time"
)

// Record is the serialisable form of an Article.
// Article stores persist one Record per article, keyed by ID.
type Record struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Link      string `json:"link" yaml:"link"`
	Published string `json:"published" yaml:"published"`
	Updated   string `json:"updated" yaml:"updated"`
	Author    string `json:"author" yaml:"author"`
	Summary   string `json:"summary" yaml:"summary"`
	Content   string `json:"content" yaml:"content"`
}

// Fields returns the record as construction fields.
func (r Record) Fields() ArticleFields {
	return ArticleFields(r)
}

// ArticleFromRecord reconstructs an Article from its record.
// The record must carry an ID.
func ArticleFromRecord(r Record) (*Article, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: record without id", ErrInvalidInput)
	}
	return r.Fields().Build(time.Now(), nil)
}

// timestampLayouts are the ISO-8601 shapes accepted by ParseTimestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without a zone are
// read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q is not ISO-8601", ErrInvalidInput, value)
}

// FormatTimestamp renders t as an RFC 3339 string with nanoseconds.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
