package querylang

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/querytrans/internal/core/domain"
	"github.com/custodia-labs/querytrans/internal/core/ports/driven"
)

// Expand rewrites every literal of q into the set of its spellings under
// opts.Schemes, so the query matches text in any of those orthographies.
//
// A literal with several spellings becomes (a OR b) in positive context.
// Under negation it becomes a group without OR markers, which renders as
// -a -b: NOT (a OR b) pushed down to (NOT a) AND (NOT b).
//
// q is not modified. Converter failures abort the expansion and match
// domain.ErrConversion.
func Expand(q domain.Query, conv driven.Converter, opts domain.ExpandOptions) (domain.Query, error) {
	if opts.Ordering == "" {
		opts.Ordering = domain.OrderingInputFirst
	}
	if !opts.Ordering.IsValid() {
		return domain.Query{}, fmt.Errorf("%w: %q", domain.ErrUnknownOrdering, opts.Ordering)
	}

	e := &expander{conv: conv, opts: opts}
	members, err := e.simples(q.Members, false)
	if err != nil {
		return domain.Query{}, err
	}
	return domain.Query{Members: members}, nil
}

type expander struct {
	conv driven.Converter
	opts domain.ExpandOptions
}

func (e *expander) simples(in []domain.Simple, negated bool) ([]domain.Simple, error) {
	out := make([]domain.Simple, 0, len(in))
	for _, s := range in {
		expanded, err := e.simple(s, negated)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (e *expander) simple(s domain.Simple, negated bool) ([]domain.Simple, error) {
	switch n := s.(type) {
	case domain.Term:
		t, err := e.term(n, negated)
		if err != nil {
			return nil, err
		}
		return []domain.Simple{t}, nil
	case domain.Group:
		g, err := e.group(n, negated)
		if err != nil {
			return nil, err
		}
		return []domain.Simple{g}, nil
	case domain.Negative:
		neg, err := e.negative(n, negated)
		if err != nil {
			return nil, err
		}
		return []domain.Simple{neg}, nil
	default:
		panic(fmt.Sprintf("querylang: unknown simple node %T", s))
	}
}

func (e *expander) group(g domain.Group, negated bool) (domain.Group, error) {
	members, err := e.simples(g.Members, negated)
	if err != nil {
		return domain.Group{}, err
	}
	return domain.Group{Members: members}, nil
}

func (e *expander) negative(n domain.Negative, negated bool) (domain.Negative, error) {
	switch inner := n.Inner.(type) {
	case domain.Group:
		g, err := e.group(inner, !negated)
		if err != nil {
			return domain.Negative{}, err
		}
		return domain.Negative{Inner: g}, nil
	case domain.Term:
		t, err := e.term(inner, !negated)
		if err != nil {
			return domain.Negative{}, err
		}
		switch r := t.(type) {
		case domain.Term:
			return domain.Negative{Inner: r}, nil
		case domain.Group:
			return domain.Negative{Inner: r}, nil
		default:
			panic(fmt.Sprintf("querylang: term expanded to %T", t))
		}
	default:
		panic(fmt.Sprintf("querylang: unknown negatable node %T", n.Inner))
	}
}

// term returns t itself when it has a single spelling, otherwise a group
// of its spellings.
func (e *expander) term(t domain.Term, negated bool) (domain.Simple, error) {
	spellings, err := e.spellings(t.Text)
	if err != nil {
		return nil, err
	}
	if len(spellings) == 1 {
		return t, nil
	}

	if negated {
		return domain.Group{Members: domain.NewTerms(spellings...)}, nil
	}

	members := make([]domain.Simple, 0, 2*len(spellings)-1)
	for i, s := range spellings {
		if i > 0 {
			members = append(members, domain.Term{Text: domain.OrMarker})
		}
		members = append(members, domain.Term{Text: s})
	}
	return domain.Group{Members: members}, nil
}

// spellings returns the distinct spellings of text: text itself plus its
// conversion under every scheme.
func (e *expander) spellings(text string) ([]string, error) {
	out := []string{text}
	for _, scheme := range e.opts.Schemes {
		converted, err := e.conv.Convert(scheme, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s on %q: %w", domain.ErrConversion, scheme, text, err)
		}
		if converted == "" {
			return nil, fmt.Errorf("%w: %s on %q: empty result", domain.ErrConversion, scheme, text)
		}
		if !slices.Contains(out, converted) {
			out = append(out, converted)
		}
	}

	if e.opts.Ordering == domain.OrderingLexical {
		slices.Sort(out)
	}
	return out, nil
}
