package querylang

import (
	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// Parse parses a query.
//
//	query    := simple (ws* simple)*
//	group    := '(' ws* simple (ws* simple)* ws* ')' ws*
//	negative := '-' ws* (group | term)
//	simple   := negative | group | term
//	term     := 1+ chars except ws, '(' and ')', then ws*
//
// The whole input must be consumed. Failures are *domain.ParseError values.
func Parse(input string) (domain.Query, error) {
	p := &parser{input: input}
	return p.parseQuery()
}

// parser is a recursive descent parser over the raw bytes of the input.
// Every delimiter is ASCII, so scanning bytes never splits a UTF-8 sequence.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseQuery() (domain.Query, error) {
	if p.input == "" {
		return domain.Query{}, p.fail(domain.ParseReasonEmpty)
	}
	if isSpace(p.input[0]) {
		return domain.Query{}, p.fail(domain.ParseReasonLeadingSpace)
	}

	var members []domain.Simple
	for !p.eof() {
		if p.peek() == ')' {
			return domain.Query{}, p.fail(domain.ParseReasonUnexpectedClose)
		}
		s, err := p.parseSimple()
		if err != nil {
			return domain.Query{}, err
		}
		members = append(members, s)
	}

	return domain.Query{Members: members}, nil
}

// parseSimple parses one simple at a position that is neither end of input,
// whitespace nor ')'.
func (p *parser) parseSimple() (domain.Simple, error) {
	switch p.peek() {
	case '-':
		return p.parseNegative()
	case '(':
		return p.parseGroup()
	default:
		return p.parseTerm(), nil
	}
}

func (p *parser) parseNegative() (domain.Simple, error) {
	start := p.pos
	p.pos++ // '-'
	p.skipSpace()

	if p.eof() || p.peek() == ')' {
		p.pos = start
		return nil, p.fail(domain.ParseReasonDanglingNegate)
	}

	if p.peek() == '(' {
		g, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return domain.Negative{Inner: g}, nil
	}

	return domain.Negative{Inner: p.parseTerm()}, nil
}

func (p *parser) parseGroup() (domain.Group, error) {
	start := p.pos
	p.pos++ // '('
	p.skipSpace()

	var members []domain.Simple
	for {
		if p.eof() {
			p.pos = start
			return domain.Group{}, p.fail(domain.ParseReasonUnclosedGroup)
		}
		if p.peek() == ')' {
			break
		}
		s, err := p.parseSimple()
		if err != nil {
			return domain.Group{}, err
		}
		members = append(members, s)
	}

	if len(members) == 0 {
		p.pos = start
		return domain.Group{}, p.fail(domain.ParseReasonEmptyGroup)
	}

	p.pos++ // ')'
	p.skipSpace()
	return domain.Group{Members: members}, nil
}

// parseTerm consumes a run of term bytes and the whitespace after it.
// The caller guarantees at least one term byte is available.
func (p *parser) parseTerm() domain.Term {
	start := p.pos
	for !p.eof() && isTermByte(p.peek()) {
		p.pos++
	}
	t := domain.Term{Text: p.input[start:p.pos]}
	p.skipSpace()
	return t
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

func (p *parser) fail(reason string) *domain.ParseError {
	return &domain.ParseError{
		Offset:    p.pos,
		Remaining: p.input[p.pos:],
		Reason:    reason,
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isTermByte(c byte) bool {
	return !isSpace(c) && c != '(' && c != ')'
}
