package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Scheme names one orthography conversion. Names follow the OpenCC
// configuration names.
type Scheme string

// Known conversion schemes.
const (
	SchemeS2T   Scheme = "s2t"   // Simplified to Traditional
	SchemeT2S   Scheme = "t2s"   // Traditional to Simplified
	SchemeS2TW  Scheme = "s2tw"  // Simplified to Taiwan standard
	SchemeTW2S  Scheme = "tw2s"  // Taiwan standard to Simplified
	SchemeS2TWP Scheme = "s2twp" // Simplified to Taiwan standard with phrases
	SchemeTW2SP Scheme = "tw2sp" // Taiwan standard with phrases to Simplified
	SchemeS2HK  Scheme = "s2hk"  // Simplified to Hong Kong variant
	SchemeHK2S  Scheme = "hk2s"  // Hong Kong variant to Simplified
	SchemeT2TW  Scheme = "t2tw"  // Traditional to Taiwan standard
	SchemeT2HK  Scheme = "t2hk"  // Traditional to Hong Kong variant
)

var knownSchemes = map[Scheme]bool{
	SchemeS2T:   true,
	SchemeT2S:   true,
	SchemeS2TW:  true,
	SchemeTW2S:  true,
	SchemeS2TWP: true,
	SchemeTW2SP: true,
	SchemeS2HK:  true,
	SchemeHK2S:  true,
	SchemeT2TW:  true,
	SchemeT2HK:  true,
}

// DefaultSchemes returns the four Taiwan schemes: two standard and two
// phrase-aware, in both directions.
func DefaultSchemes() []Scheme {
	return []Scheme{SchemeS2TW, SchemeTW2S, SchemeS2TWP, SchemeTW2SP}
}

// KnownSchemes returns every recognised scheme, sorted by name.
func KnownSchemes() []Scheme {
	out := make([]Scheme, 0, len(knownSchemes))
	for s := range knownSchemes {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// IsValid returns true if the scheme is recognised.
func (s Scheme) IsValid() bool {
	return knownSchemes[s]
}

// String returns the string representation.
func (s Scheme) String() string {
	return string(s)
}

// ParseSchemes converts names to schemes, rejecting unknown names.
func ParseSchemes(names []string) ([]Scheme, error) {
	out := make([]Scheme, 0, len(names))
	for _, n := range names {
		s := Scheme(strings.ToLower(strings.TrimSpace(n)))
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, n)
		}
		out = append(out, s)
	}
	return out, nil
}

// Ordering decides the order alternative spellings appear in a rewritten term.
type Ordering string

// Available orderings.
const (
	// OrderingInputFirst keeps the original text first, then new spellings
	// in scheme order.
	OrderingInputFirst Ordering = "input-first"

	// OrderingLexical sorts spellings bytewise.
	OrderingLexical Ordering = "lexical"
)

// IsValid returns true if the ordering is recognised.
func (o Ordering) IsValid() bool {
	return o == OrderingInputFirst || o == OrderingLexical
}

// String returns the string representation.
func (o Ordering) String() string {
	return string(o)
}

// ExpandOptions parameterises term expansion.
type ExpandOptions struct {
	// Schemes are applied to every literal, in order.
	Schemes []Scheme

	// Ordering of spellings within a rewritten term.
	Ordering Ordering
}

// DefaultExpandOptions returns the default schemes with input-first ordering.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{
		Schemes:  DefaultSchemes(),
		Ordering: OrderingInputFirst,
	}
}
