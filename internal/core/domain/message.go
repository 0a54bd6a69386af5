package domain

import "time"

// Message is one chat message read from an archive.
type Message struct {
	// ID is the message id, unique within its group.
	ID int64

	// GroupID is the chat the message belongs to.
	GroupID int64

	// FromUser is the sender id. Zero when unknown.
	FromUser int64

	// CreatedAt is when the message was sent.
	CreatedAt time.Time

	// Text is the message body.
	Text string
}

// MessageFilter selects the messages a word count reads.
type MessageFilter struct {
	// GroupID is required.
	GroupID int64

	// After keeps messages created strictly after this instant.
	// The zero value keeps everything.
	After time.Time

	// UserID restricts to one sender. Zero means any sender.
	UserID int64
}

// Validate checks that the filter names a group.
func (f MessageFilter) Validate() error {
	if f.GroupID == 0 {
		return ErrMissingGroup
	}
	return nil
}

// Matches reports whether a message passes the filter.
func (f MessageFilter) Matches(m Message) bool {
	if m.GroupID != f.GroupID {
		return false
	}
	if !f.After.IsZero() && !m.CreatedAt.After(f.After) {
		return false
	}
	if f.UserID != 0 && m.FromUser != f.UserID {
		return false
	}
	return true
}

// TaggedWord is a segmented word with its part-of-speech tag.
type TaggedWord struct {
	Word string
	Tag  string
}

// DictEntry is one user dictionary line.
type DictEntry struct {
	Word string
	Tag  string
}

// WordCount is how often a word occurred.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// WordCountReport is the result of one word count run.
type WordCountReport struct {
	// ID identifies the run in logs and reports.
	ID string `json:"id" yaml:"id"`

	// GroupID, After and UserID echo the filter.
	GroupID int64     `json:"group_id" yaml:"group_id"`
	After   time.Time `json:"after" yaml:"after"`
	UserID  int64     `json:"user_id,omitempty" yaml:"user_id,omitempty"`

	// Messages is the number of messages read, including skipped ones.
	Messages int `json:"messages" yaml:"messages"`

	// Words are sorted by count, highest first, then by word.
	Words []WordCount `json:"words" yaml:"words"`
}

// CountOptions tunes word counting.
type CountOptions struct {
	// StopTags are part-of-speech tags whose words are never counted.
	StopTags []string

	// MaxWordBytes drops words longer than this many bytes.
	MaxWordBytes int

	// SkipPrefixes drop whole messages that start with any of them.
	SkipPrefixes []string

	// SkipLineMarkers drop the rest of a message once a line starts with any of them.
	SkipLineMarkers []string
}

// DefaultStopTags are tags for adverbs, locatives, punctuation, prepositions,
// time words, measure words, numerals, personal names, pronouns,
// conjunctions, interjections, function words, modal particles and
// auxiliaries.
func DefaultStopTags() []string {
	return []string{
		"d", "f", "x", "p", "t", "q", "m", "nr", "r", "c", "e", "xc", "zg", "y",
		"uj", "ug", "ul", "ud",
	}
}

// DefaultCountOptions returns the options used by the cutwords command.
func DefaultCountOptions() CountOptions {
	return CountOptions{
		StopTags:     DefaultStopTags(),
		MaxWordBytes: 21,
		SkipPrefixes: []string{
			"/luoxucloud",
			"落絮词云为您生成消息词云",
			"落絮词云未找到符合条件的消息",
			"[Lisa] ",
		},
		SkipLineMarkers: []string{"[webpage]", "[poll]", "[file]", "[audio]"},
	}
}
