package taglang

import (
	"strings"
)

const eof = rune(-1)

type parser struct {
	runes []rune
	// position of every rune, plus one for the end of input
	positions []Pos
	i         int
}

// Parse turns Tagfile source into statements in file order.
func Parse(source string) ([]*Statement, error) {
	p := newParser(source)
	var ret []*Statement
	for p.peek() != eof {
		st, err := p.line()
		if err != nil {
			return nil, err
		}
		if st != nil {
			ret = append(ret, st)
		}
	}
	return ret, nil
}

func newParser(source string) *parser {
	runes := []rune(source)
	positions := make([]Pos, 0, len(runes)+1)
	pos := Pos{
		Line:   1,
		Column: 1,
	}
	for _, r := range runes {
		positions = append(positions, pos)
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	positions = append(positions, pos)
	return &parser{
		runes:     runes,
		positions: positions,
	}
}

func (p *parser) peek() rune {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) rune {
	if p.i+n >= len(p.runes) {
		return eof
	}
	return p.runes[p.i+n]
}

func (p *parser) next() rune {
	r := p.peek()
	if r != eof {
		p.i++
	}
	return r
}

func (p *parser) here() Pos {
	return p.positions[p.i]
}

// last is the position of the most recently consumed rune.
func (p *parser) last() Pos {
	if p.i == 0 {
		return p.positions[0]
	}
	return p.positions[p.i-1]
}

func (p *parser) errorf(format string, args ...any) *Error {
	pos := p.here()
	return newError(KindSyntax, Location{Start: pos, End: pos}, format, args...)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isKeywordStart(r rune) bool {
	return r >= 'A' && r <= 'Z' ||
		r >= 'a' && r <= 'z' ||
		r == '_'
}

func isKeywordChar(r rune) bool {
	return isKeywordStart(r) || r >= '0' && r <= '9'
}

func isNameStart(r rune) bool {
	return isKeywordStart(r) || r == '+'
}

// bare $names stop at ':' so that "$A:$B" splits; use ${a:b} for such names
func isNameChar(r rune) bool {
	return isKeywordChar(r) || r == '+'
}

func isTagChar(r rune) bool {
	return isKeywordChar(r) || r == '+' || r == ':'
}

// atContinuation reports a backslash immediately followed by a line break.
func (p *parser) atContinuation() bool {
	if p.peek() != '\\' {
		return false
	}
	if p.peekAt(1) == '\n' {
		return true
	}
	return p.peekAt(1) == '\r' && p.peekAt(2) == '\n'
}

func (p *parser) skipContinuation() {
	p.next() // backslash
	if p.peek() == '\r' {
		p.next()
	}
	p.next() // newline
	for isBlank(p.peek()) {
		p.next()
	}
}

func (p *parser) skipComment() {
	for r := p.peek(); r != eof && r != '\n'; r = p.peek() {
		p.next()
	}
}

func (p *parser) line() (*Statement, error) {
	indent := false
	for isBlank(p.peek()) {
		p.next()
		indent = true
	}

	switch p.peek() {
	case eof:
		return nil, nil
	case '\n':
		p.next()
		return nil, nil
	case '#':
		p.skipComment()
		p.next()
		return nil, nil
	}

	st, err := p.statement(indent)
	if err != nil {
		return nil, err
	}

	for isBlank(p.peek()) {
		p.next()
	}
	if p.peek() == '#' {
		p.skipComment()
	}
	switch p.peek() {
	case eof:
	case '\n':
		p.next()
	default:
		return nil, p.errorf("unexpected character %q", p.peek())
	}

	return st, nil
}

func (p *parser) statement(indent bool) (*Statement, error) {
	var guards []Guard
	for r := p.peek(); r == '+' || r == '!'; r = p.peek() {
		guard, err := p.guard()
		if err != nil {
			return nil, err
		}
		guards = append(guards, guard)
		if _, ok := p.separator(); !ok {
			return nil, p.errorf("expected whitespace after conditional")
		}
	}

	keyword, keywordLoc, err := p.keyword()
	if err != nil {
		return nil, err
	}

	args, argsLoc, err := p.arguments()
	if err != nil {
		return nil, err
	}

	st := &Statement{
		Keyword:  keyword,
		Args:     args,
		Location: span(keywordLoc, argsLoc),
	}
	if len(guards) == 0 {
		st.Indent = indent
		return st, nil
	}

	return &Statement{
		Guards:   guards,
		Inner:    st,
		Indent:   indent,
		Location: span(guards[0].Location, st.Location),
	}, nil
}

func (p *parser) guard() (Guard, error) {
	start := p.here()
	negative := p.next() == '!'
	var sb strings.Builder
	for isTagChar(p.peek()) {
		sb.WriteRune(p.next())
	}
	name := sb.String()
	if !ValidTagName(name) {
		return Guard{}, newError(KindSyntax, Location{Start: start, End: p.last()}, "invalid tag in conditional: %q", name)
	}
	return Guard{
		Name:     name,
		Negative: negative,
		Location: Location{
			Start: start,
			End:   p.last(),
		},
	}, nil
}

func (p *parser) keyword() (string, Location, error) {
	if !isKeywordStart(p.peek()) {
		return "", Location{}, p.errorf("expected keyword, got %q", p.peek())
	}
	start := p.here()
	var sb strings.Builder
	for isKeywordChar(p.peek()) {
		sb.WriteRune(p.next())
	}
	loc := Location{
		Start: start,
		End:   p.last(),
	}
	if r := p.peek(); r != eof && r != '\n' && !isBlank(r) && !p.atContinuation() {
		return "", Location{}, p.errorf("unexpected character %q after keyword", r)
	}
	return sb.String(), loc, nil
}

// separator consumes blanks and line continuations between words.
func (p *parser) separator() (Skip, bool) {
	start := p.here()
	var sb strings.Builder
	continued := false
	for {
		if isBlank(p.peek()) {
			sb.WriteRune(p.next())
			continue
		}
		if p.atContinuation() {
			p.skipContinuation()
			continued = true
			continue
		}
		break
	}
	if sb.Len() == 0 && !continued {
		return Skip{}, false
	}
	text := sb.String()
	if continued {
		text = " "
	}
	loc := Location{
		Start: start,
		End:   p.last(),
	}
	return Skip{
		Inner: Literal{
			Text:     text,
			Location: loc,
		},
		Location: loc,
	}, true
}

func (p *parser) arguments() (args []Arg, loc Location, err error) {
	for {
		sep, ok := p.separator()
		r := p.peek()
		if r == eof || r == '\n' || r == '#' && ok {
			return
		}
		if !ok {
			return nil, loc, p.errorf("expected whitespace before %q", r)
		}
		if len(args) > 0 {
			args = append(args, sep)
		}
		pieces, err := p.word()
		if err != nil {
			return nil, loc, err
		}
		args = append(args, pieces...)
		loc = span(loc, span(pieces[0].Loc(), pieces[len(pieces)-1].Loc()))
	}
}

type literalBuffer struct {
	sb    strings.Builder
	used  bool
	start Pos
	end   Pos
}

func (b *literalBuffer) add(r rune, pos Pos) {
	if !b.used {
		b.used = true
		b.start = pos
	}
	b.sb.WriteRune(r)
	b.end = pos
}

func (b *literalBuffer) flush(pieces []Arg) []Arg {
	if !b.used {
		return pieces
	}
	pieces = append(pieces, Literal{
		Text: b.sb.String(),
		Location: Location{
			Start: b.start,
			End:   b.end,
		},
	})
	b.sb.Reset()
	b.used = false
	return pieces
}

// word reads one argument. Pieces after the first are wrapped in Append.
func (p *parser) word() ([]Arg, error) {
	var pieces []Arg
	var buf literalBuffer
	quoted := false
	quoteStart := p.here()

loop:
	for {
		r := p.peek()
		switch {

		case r == eof || r == '\n' || isBlank(r):
			break loop

		case p.atContinuation():
			p.skipContinuation()
			if r := p.peek(); r == eof || r == '\n' {
				break loop
			}

		case r == '\\':
			p.next()
			if p.peek() == eof {
				return nil, p.errorf("dangling escape at end of input")
			}
			pos := p.here()
			buf.add(p.next(), pos)

		case r == '\'':
			if !quoted {
				quoted = true
				quoteStart = p.here()
			}
			p.next()
			for {
				pos := p.here()
				c := p.next()
				if c == eof || c == '\n' {
					return nil, newError(KindSyntax, Location{Start: quoteStart, End: pos}, "unterminated string")
				}
				if c == '\'' {
					break
				}
				buf.add(c, pos)
			}

		case r == '"':
			if !quoted {
				quoted = true
				quoteStart = p.here()
			}
			p.next()
			for {
				pos := p.here()
				c := p.peek()
				if c == eof || c == '\n' {
					return nil, newError(KindSyntax, Location{Start: quoteStart, End: pos}, "unterminated string")
				}
				if c == '"' {
					p.next()
					break
				}
				if c == '$' && p.peekAt(1) != '$' {
					pieces = buf.flush(pieces)
					sub, err := p.substitution()
					if err != nil {
						return nil, err
					}
					pieces = append(pieces, sub)
					continue
				}
				p.next()
				switch c {
				case '$':
					p.next()
				case '\\':
					escaped := p.next()
					switch escaped {
					case eof, '\n':
						return nil, newError(KindSyntax, Location{Start: quoteStart, End: pos}, "unterminated string")
					case 'n':
						c = '\n'
					case 't':
						c = '\t'
					default:
						c = escaped
					}
				}
				buf.add(c, pos)
			}

		case r == '$':
			if p.peekAt(1) == '$' {
				pos := p.here()
				p.next()
				p.next()
				buf.add('$', pos)
				continue
			}
			pieces = buf.flush(pieces)
			sub, err := p.substitution()
			if err != nil {
				return nil, err
			}
			pieces = append(pieces, sub)

		default:
			pos := p.here()
			buf.add(p.next(), pos)
		}
	}

	pieces = buf.flush(pieces)
	if len(pieces) == 0 {
		if !quoted {
			return nil, p.errorf("expected argument")
		}
		pieces = append(pieces, Literal{
			Location: Location{
				Start: quoteStart,
				End:   p.last(),
			},
		})
	}

	for i := 1; i < len(pieces); i++ {
		pieces[i] = Append{
			Inner:    pieces[i],
			Location: pieces[i].Loc(),
		}
	}
	return pieces, nil
}

func (p *parser) substitution() (Arg, error) {
	start := p.here()
	p.next() // $
	optional := false
	if p.peek() == '?' {
		p.next()
		optional = true
	}

	if isNameStart(p.peek()) {
		nameStart := p.here()
		var sb strings.Builder
		for isNameChar(p.peek()) {
			sb.WriteRune(p.next())
		}
		return Substitution{
			Name: []Arg{
				Literal{
					Text: sb.String(),
					Location: Location{
						Start: nameStart,
						End:   p.last(),
					},
				},
			},
			Optional: optional,
			Location: Location{
				Start: start,
				End:   p.last(),
			},
		}, nil
	}

	if p.peek() != '{' {
		return nil, p.errorf("expected variable name after '$'")
	}
	p.next()

	var name []Arg
	var buf literalBuffer
	for {
		r := p.peek()
		switch {
		case r == eof || r == '\n':
			return nil, newError(KindSyntax, Location{Start: start, End: p.here()}, "unterminated substitution")
		case r == '}':
			p.next()
			name = buf.flush(name)
			return Substitution{
				Name:     name,
				Optional: optional,
				Location: Location{
					Start: start,
					End:   p.last(),
				},
			}, nil
		case r == '$' && p.peekAt(1) == '$':
			pos := p.here()
			p.next()
			p.next()
			buf.add('$', pos)
		case r == '$':
			name = buf.flush(name)
			sub, err := p.substitution()
			if err != nil {
				return nil, err
			}
			name = append(name, sub)
		case r == '\\':
			p.next()
			pos := p.here()
			escaped := p.next()
			if escaped == eof || escaped == '\n' {
				return nil, newError(KindSyntax, Location{Start: start, End: pos}, "unterminated substitution")
			}
			buf.add(escaped, pos)
		default:
			pos := p.here()
			buf.add(p.next(), pos)
		}
	}
}
