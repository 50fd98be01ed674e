package model

import (
	"fmt"

	"github.com/handiism/lastfm-graph/internal/lastfm"
)

// Stats holds chart statistics of an entity. It is plain data: no fetcher,
// no relationships. Nil fields are absent, which is distinct from zero.
type Stats struct {
	// Subject is the name of the entity the numbers belong to. It is the
	// identity of the Stats value.
	Subject *string

	// Rank is the position in the chart the entity was read from.
	Rank *int

	// TagCount is how often the chart's tag was applied to the subject.
	TagCount *int
}

func (s *Stats) clone() *Stats {
	if s == nil {
		return nil
	}
	return &Stats{
		Subject:  clonePtr(s.Subject),
		Rank:     clonePtr(s.Rank),
		TagCount: clonePtr(s.TagCount),
	}
}

// Key returns the subject, or lastfm.ErrMissingIdentity.
func (s Stats) Key() (string, error) {
	return requireName(s.Subject)
}

func (s Stats) String() string {
	rank, tagCount := "-", "-"
	if s.Rank != nil {
		rank = fmt.Sprint(*s.Rank)
	}
	if s.TagCount != nil {
		tagCount = fmt.Sprint(*s.TagCount)
	}
	return fmt.Sprintf("<lastfm.Stats: %s rank=%s tagcount=%s>", display(s.Subject), rank, tagCount)
}

// parseStats reads the rank attribute and tagcount child of a chart entry.
// The subject is the entry's own name.
func parseStats(n lastfm.Node) *Stats {
	return &Stats{
		Subject:  text(n, "name"),
		Rank:     number(n.Attr("rank")),
		TagCount: number(n.FindChildText("tagcount")),
	}
}
