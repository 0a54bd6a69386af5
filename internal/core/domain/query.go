package domain

import "strings"

// OrMarker is the literal inserted between alternative spellings of a term.
// The query grammar has no OR operator; downstream search engines read it.
const OrMarker = "OR"

// Simple is one unit of a query: a Term, a Group or a Negative.
type Simple interface {
	isSimple()
	String() string
}

// Negatable is what a Negative can wrap: a Term or a Group.
type Negatable interface {
	isNegatable()
	String() string
}

var (
	_ Simple    = Term{}
	_ Simple    = Group{}
	_ Simple    = Negative{}
	_ Negatable = Term{}
	_ Negatable = Group{}
)

// Term is a single literal search token.
// It never contains spaces, tabs or parentheses.
type Term struct {
	Text string
}

func (Term) isSimple()    {}
func (Term) isNegatable() {}

// String returns the raw text.
func (t Term) String() string { return t.Text }

// Group is a parenthesised conjunction of sub-expressions.
type Group struct {
	Members []Simple
}

func (Group) isSimple()    {}
func (Group) isNegatable() {}

// String renders the group as "(a b c)". An empty group renders as "()".
func (g Group) String() string {
	return "(" + joinSimples(g.Members, "") + ")"
}

// Negative is a negated Term or Group.
type Negative struct {
	Inner Negatable
}

func (Negative) isSimple() {}

// String renders a negated term as "-a" and a negated group as "-a -b",
// one negation per member, which reads as the conjunction of the negations.
func (n Negative) String() string {
	switch inner := n.Inner.(type) {
	case Term:
		return "-" + inner.Text
	case Group:
		if len(inner.Members) == 0 {
			return "-()"
		}
		return joinSimples(inner.Members, "-")
	default:
		panic("domain: unknown negatable node")
	}
}

// Query is the parse root: an implicit conjunction of its members.
type Query struct {
	Members []Simple
}

// String renders the members space-joined. An empty query renders as "".
func (q Query) String() string {
	return joinSimples(q.Members, "")
}

func joinSimples(members []Simple, prefix string) string {
	var b strings.Builder
	for i, m := range members {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(prefix)
		b.WriteString(m.String())
	}
	return b.String()
}

// NewTerms wraps each text as a Term.
func NewTerms(texts ...string) []Simple {
	out := make([]Simple, len(texts))
	for i, t := range texts {
		out[i] = Term{Text: t}
	}
	return out
}
