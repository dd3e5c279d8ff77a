package domain

import "time"

type SourceKind string

const (
	KindJournal       SourceKind = "journal"
	KindNews          SourceKind = "news"
	KindResearchPaper SourceKind = "research_paper"
	KindAnnouncement  SourceKind = "announcement"
	KindConference    SourceKind = "conference"
	KindPatent        SourceKind = "patent"
	KindEducational   SourceKind = "educational"
)

func (k SourceKind) Valid() bool {
	switch k {
	case KindJournal, KindNews, KindResearchPaper, KindAnnouncement,
		KindConference, KindPatent, KindEducational:
		return true
	}
	return false
}

// Tier is the static priority level assigned to a source. It feeds the
// priority score of every item the source produces.
type Tier string

const (
	TierUrgent Tier = "urgent" // breaking news, critical discoveries
	TierHigh   Tier = "high"   // recent important research
	TierMedium Tier = "medium" // regular updates
	TierLow    Tier = "low"    // background information
)

func (t Tier) Valid() bool {
	switch t {
	case TierUrgent, TierHigh, TierMedium, TierLow:
		return true
	}
	return false
}

// ContentSource is the configuration and mutable health state for one
// external feed. PollIntervalHours is immutable once the source is
// registered; LastChecked and SuccessRate are owned by the source's
// polling loop.
type ContentSource struct {
	SourceID          string     `json:"sourceId"`
	Name              string     `json:"name"`
	URL               string     `json:"url"`
	Kind              SourceKind `json:"kind"`
	Domains           []string   `json:"domains"`
	PollIntervalHours int        `json:"pollIntervalHours"`
	Tier              Tier       `json:"tier"`

	LastChecked *time.Time `json:"lastChecked,omitempty"`
	SuccessRate float64    `json:"successRate"`
}

const (
	// SuccessRate multipliers. Failure decay and success recovery are
	// asymmetric on purpose: health degrades fast and rebuilds slowly.
	FetchFailureDecay = 0.9
	LoopErrorDecay    = 0.95
	SuccessRecovery   = 1.01
)

// RecordSuccess nudges the rolling success rate up, capped at 1.0.
func (s *ContentSource) RecordSuccess() {
	s.SuccessRate = min(1.0, s.SuccessRate*SuccessRecovery)
}

// RecordFetchFailure decays the rolling success rate after a failed fetch.
func (s *ContentSource) RecordFetchFailure() {
	s.SuccessRate *= FetchFailureDecay
}

// RecordLoopError decays the rolling success rate after a non-fatal error
// in the source's polling loop.
func (s *ContentSource) RecordLoopError() {
	s.SuccessRate *= LoopErrorDecay
}

// Due reports whether the source should be checked at the given time.
// A source that has never been checked is due immediately.
func (s *ContentSource) Due(now time.Time) bool {
	if s.LastChecked == nil {
		return true
	}
	return now.Sub(*s.LastChecked) >= s.PollInterval()
}

func (s *ContentSource) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalHours) * time.Hour
}
