package mono

import (
	"monoforce/internal/diag"
	"monoforce/internal/token"
)

// ParseArgs parses `name = value, ...` into a SubstList. Either side is a
// lifetime when it starts with the lifetime sigil and a plain identifier
// otherwise. A trailing comma and an empty list are accepted. No semantic
// checks happen here.
func ParseArgs(toks []token.Token) (SubstList, error) {
	s := newStream(toks)
	var out SubstList
	for !s.at(token.EOF) {
		name, err := parseTypeOrLifetime(s)
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(token.Eq, diag.SynExpectEquals, "`=`"); err != nil {
			return nil, err
		}
		value, err := parseTypeOrLifetime(s)
		if err != nil {
			return nil, err
		}
		out = append(out, Subst{Name: name, Value: value, Span: name.Span.Cover(value.Span)})

		if s.at(token.EOF) {
			break
		}
		if _, err := s.expect(token.Comma, diag.SynExpectComma, "`,` or end of arguments"); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseTypeOrLifetime(s *stream) (TypeOrLifetime, error) {
	tok := s.peek()
	switch tok.Kind {
	case token.Lifetime:
		s.next()
		return TypeOrLifetime{Kind: ArgLifetime, Name: tok.Text, Span: tok.Span}, nil
	case token.Ident:
		s.next()
		return TypeOrLifetime{Kind: ArgType, Name: tok.Text, Span: tok.Span}, nil
	default:
		return TypeOrLifetime{}, s.errorf(diag.SynExpectTypeOrLifetime, "type identifier or lifetime")
	}
}
