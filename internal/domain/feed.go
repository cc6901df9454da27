package domain

import (
	"cmp"
	"slices"
)

// FeedEntryType identifies the item variant of a feed entry.
type FeedEntryType string

// Feed entry types. Declaration order is the tie-break order within one
// (topic, section) position.
const (
	FeedEntryReel     FeedEntryType = "reel"
	FeedEntryPost     FeedEntryType = "post"
	FeedEntryImage    FeedEntryType = "image"
	FeedEntryQuestion FeedEntryType = "question"
)

func (t FeedEntryType) rank() int {
	switch t {
	case FeedEntryReel:
		return 0
	case FeedEntryPost:
		return 1
	case FeedEntryImage:
		return 2
	case FeedEntryQuestion:
		return 3
	default:
		return 4
	}
}

// FeedEntry is one element of the flattened feed. Item holds a Reel, Post,
// Image or Question value matching Type.
type FeedEntry struct {
	Type    FeedEntryType `json:"type"`
	Topic   int           `json:"topic"`
	Section int           `json:"section"`
	Item    any           `json:"item"`
}

// Feed flattens all item collections into one list ordered by topic, then
// section, then type (reel, post, image, question). Items that compare equal
// keep their collection order.
func (s *Studyset) Feed() []FeedEntry {
	feed := make([]FeedEntry, 0, len(s.Reels)+len(s.Posts)+len(s.Images)+len(s.Questions))

	for _, r := range s.Reels {
		feed = append(feed, FeedEntry{Type: FeedEntryReel, Topic: r.Topic, Section: r.Section, Item: r})
	}
	for _, p := range s.Posts {
		feed = append(feed, FeedEntry{Type: FeedEntryPost, Topic: p.Topic, Section: p.Section, Item: p})
	}
	for _, img := range s.Images {
		feed = append(feed, FeedEntry{Type: FeedEntryImage, Topic: img.Topic, Section: img.Section, Item: img})
	}
	for _, q := range s.Questions {
		feed = append(feed, FeedEntry{Type: FeedEntryQuestion, Topic: q.Topic, Section: q.Section, Item: q})
	}

	slices.SortStableFunc(feed, func(a, b FeedEntry) int {
		return cmp.Or(
			cmp.Compare(a.Topic, b.Topic),
			cmp.Compare(a.Section, b.Section),
			cmp.Compare(a.Type.rank(), b.Type.rank()),
		)
	})

	return feed
}
