package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"
)

const contentIDLength = 16

// RawContent is one normalized ingested item. Detected domains and the
// priority score are computed once at ingestion time and never mutated;
// the store treats the whole record as append-only.
type RawContent struct {
	ContentID          string    `json:"contentId"`
	SourceID           string    `json:"sourceId"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	URL                string    `json:"url"`
	PublishDate        time.Time `json:"publishDate"`
	Authors            []string  `json:"authors,omitempty"`
	Keywords           []string  `json:"keywords,omitempty"`
	DOI                string    `json:"doi,omitempty"`
	CitationCount      int       `json:"citationCount"`
	DetectedDomains    []string  `json:"detectedDomains,omitempty"`
	PriorityScore      float64   `json:"priorityScore"`
	IngestionTimestamp time.Time `json:"ingestionTimestamp"`
}

// ContentID derives the deduplication key for an item from its title, url
// and the calendar day it was ingested. The day component is intentional:
// the same item fetched twice on one day collapses to a single id, while a
// re-fetch on a later day is treated as new content.
func ContentID(title, url string, ingestedAt time.Time) string {
	key := fmt.Sprintf("%s_%s_%s", title, url, ingestedAt.Format("2006-01-02"))
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])[:contentIDLength]
}
