package mono

import (
	"monoforce/internal/diag"
	"monoforce/internal/token"
)

// ParsePath validates toks as a complete expression path: either a
// qualified path `<Type as Trait<Args>>::item` (or `<Type>::item`) or a plain
// path such as `crate::foo::<u8>`. Generic arguments in an expression path
// need the turbofish. The returned Text is the path re-spelled with
// canonical spacing.
func ParsePath(toks []token.Token) (Path, error) {
	s := newStream(toks)
	if s.at(token.EOF) {
		return Path{}, s.errorf(diag.SynExpectPath, "path")
	}
	start := s.pos
	if err := parseExprPath(s); err != nil {
		return Path{}, err
	}
	if !s.at(token.EOF) {
		return Path{}, s.errorf(diag.SynTrailingTokens, "end of path")
	}
	used := s.consumed(start)
	return Path{
		Text: joinTokens(used),
		Span: used[0].Span.Cover(used[len(used)-1].Span),
	}, nil
}

// ExpandPath runs the path transform: validate the path, then reference it
// as written, with no parameter matching.
func ExpandPath(toks []token.Token) (string, error) {
	p, err := ParsePath(toks)
	if err != nil {
		return "", err
	}
	return EmitRefCast(p.Text, nil), nil
}

func parseExprPath(s *stream) error {
	if s.at(token.Lt) {
		if err := parseQSelf(s); err != nil {
			return err
		}
		if _, err := s.expect(token.ColonColon, diag.SynExpectPath, "`::` after qualified type"); err != nil {
			return err
		}
	} else {
		s.eat(token.ColonColon)
	}

	if err := parseSegmentIdent(s); err != nil {
		return err
	}
	for s.at(token.ColonColon) {
		s.next()
		if s.at(token.Lt) {
			if err := parseGenericArgs(s); err != nil {
				return err
			}
			continue
		}
		if err := parseSegmentIdent(s); err != nil {
			return err
		}
	}
	if s.at(token.Lt) {
		return s.errorf(diag.SynUnexpectedToken, "`::<` before generic arguments in an expression path")
	}
	return nil
}

// <Type> или <Type as Trait>
func parseQSelf(s *stream) error {
	if _, err := s.expect(token.Lt, diag.SynUnexpectedToken, "`<`"); err != nil {
		return err
	}
	if err := parseType(s); err != nil {
		return err
	}
	if s.eat(token.KwAs) {
		if err := parseTypePath(s); err != nil {
			return err
		}
	}
	_, err := s.expect(token.Gt, diag.SynUnclosedAngleBracket, "`>` closing the qualified type")
	return err
}

func isPathStart(k token.Kind) bool {
	switch k {
	case token.Ident, token.KwCrate, token.KwSelfValue, token.KwSelfType, token.KwSuper, token.ColonColon:
		return true
	default:
		return false
	}
}

func parseSegmentIdent(s *stream) error {
	if s.peek().IsPathSegment() {
		s.next()
		return nil
	}
	return s.errorf(diag.SynExpectIdentifier, "path segment")
}

func parseType(s *stream) error {
	switch tok := s.peek(); tok.Kind {
	case token.Amp:
		s.next()
		s.eat(token.Lifetime)
		s.eat(token.KwMut)
		return parseType(s)
	case token.Star:
		s.next()
		if !s.eat(token.KwConst) && !s.eat(token.KwMut) {
			return s.errorf(diag.SynExpectType, "`const` or `mut` after `*`")
		}
		return parseType(s)
	case token.LParen:
		s.next()
		for !s.at(token.RParen) {
			if err := parseType(s); err != nil {
				return err
			}
			if !s.eat(token.Comma) {
				break
			}
		}
		_, err := s.expect(token.RParen, diag.SynUnclosedDelimiter, "`)`")
		return err
	case token.LBracket:
		s.next()
		if err := parseType(s); err != nil {
			return err
		}
		if s.eat(token.Semicolon) {
			if err := skipConstExpr(s, token.RBracket); err != nil {
				return err
			}
		}
		_, err := s.expect(token.RBracket, diag.SynUnclosedDelimiter, "`]`")
		return err
	case token.Bang, token.Underscore:
		s.next()
		return nil
	case token.KwDyn, token.KwImpl:
		s.next()
		return parseBounds(s)
	case token.KwFn, token.KwUnsafe, token.KwExtern, token.KwFor:
		return parseFnPtr(s)
	case token.Lt:
		if err := parseQSelf(s); err != nil {
			return err
		}
		if _, err := s.expect(token.ColonColon, diag.SynExpectPath, "`::` after qualified type"); err != nil {
			return err
		}
		return parseTypePathRest(s)
	default:
		if !isPathStart(tok.Kind) {
			return s.errorf(diag.SynExpectType, "type")
		}
		if err := parseTypePath(s); err != nil {
			return err
		}
		// голый trait object: Tr + Send
		if s.eat(token.Plus) {
			return parseBounds(s)
		}
		return nil
	}
}

// parseTypePath parses a path in type position, where generic arguments
// follow a segment directly (`Vec<u8>`) and `Fn(A) -> B` sugar is allowed.
func parseTypePath(s *stream) error {
	s.eat(token.ColonColon)
	return parseTypePathRest(s)
}

func parseTypePathRest(s *stream) error {
	if err := parseTypeSegment(s); err != nil {
		return err
	}
	for s.at(token.ColonColon) {
		s.next()
		if s.at(token.Lt) {
			if err := parseGenericArgs(s); err != nil {
				return err
			}
			continue
		}
		if err := parseTypeSegment(s); err != nil {
			return err
		}
	}
	return nil
}

func parseTypeSegment(s *stream) error {
	if err := parseSegmentIdent(s); err != nil {
		return err
	}
	switch {
	case s.at(token.Lt):
		return parseGenericArgs(s)
	case s.at(token.LParen):
		if err := parseType(s); err != nil { // кортеж аргументов Fn(A, B)
			return err
		}
		if s.eat(token.Arrow) {
			return parseType(s)
		}
	}
	return nil
}

func parseGenericArgs(s *stream) error {
	if _, err := s.expect(token.Lt, diag.SynUnexpectedToken, "`<`"); err != nil {
		return err
	}
	for !s.at(token.Gt) {
		if err := parseGenericArg(s); err != nil {
			return err
		}
		if !s.eat(token.Comma) {
			break
		}
	}
	_, err := s.expect(token.Gt, diag.SynUnclosedAngleBracket, "`>` or `,` in generic arguments")
	return err
}

func parseGenericArg(s *stream) error {
	tok := s.peek()
	switch tok.Kind {
	case token.Lifetime, token.IntLit, token.CharLit, token.StringLit, token.KwTrue, token.KwFalse:
		s.next()
		return nil
	case token.Minus:
		s.next()
		if _, err := s.expect(token.IntLit, diag.SynExpectType, "integer after `-`"); err != nil {
			return err
		}
		return nil
	case token.LBrace:
		return skipDelimited(s)
	case token.Ident:
		switch s.peekN(1).Kind {
		case token.Eq: // Item = u8
			s.next()
			s.next()
			return parseType(s)
		case token.Colon: // Item: Clone
			s.next()
			s.next()
			return parseBounds(s)
		}
	}
	return parseType(s)
}

func parseBounds(s *stream) error {
	for {
		if err := parseBound(s); err != nil {
			return err
		}
		if !s.eat(token.Plus) {
			return nil
		}
	}
}

func parseBound(s *stream) error {
	switch tok := s.peek(); tok.Kind {
	case token.Lifetime:
		s.next()
		return nil
	case token.Question: // ?Sized
		s.next()
		return parseTypePath(s)
	case token.KwFor:
		if err := parseForLifetimes(s); err != nil {
			return err
		}
		return parseTypePath(s)
	case token.LParen:
		s.next()
		if err := parseBound(s); err != nil {
			return err
		}
		_, err := s.expect(token.RParen, diag.SynUnclosedDelimiter, "`)`")
		return err
	default:
		if !isPathStart(tok.Kind) {
			return s.errorf(diag.SynExpectType, "trait bound")
		}
		return parseTypePath(s)
	}
}

// for<'a, 'b>
func parseForLifetimes(s *stream) error {
	if _, err := s.expect(token.KwFor, diag.SynUnexpectedToken, "`for`"); err != nil {
		return err
	}
	if _, err := s.expect(token.Lt, diag.SynUnexpectedToken, "`<` after `for`"); err != nil {
		return err
	}
	for s.at(token.Lifetime) {
		s.next()
		if !s.eat(token.Comma) {
			break
		}
	}
	_, err := s.expect(token.Gt, diag.SynUnclosedAngleBracket, "`>` closing `for<...>`")
	return err
}

// [for<'a>] [unsafe] [extern "abi"] fn(A, b: B) -> R
func parseFnPtr(s *stream) error {
	if s.at(token.KwFor) {
		if err := parseForLifetimes(s); err != nil {
			return err
		}
	}
	s.eat(token.KwUnsafe)
	if s.eat(token.KwExtern) {
		s.eat(token.StringLit)
	}
	if _, err := s.expect(token.KwFn, diag.SynExpectType, "`fn`"); err != nil {
		return err
	}
	if _, err := s.expect(token.LParen, diag.SynUnexpectedToken, "`(`"); err != nil {
		return err
	}
	for !s.at(token.RParen) {
		// необязательное имя параметра
		if (s.at(token.Ident) || s.at(token.Underscore)) && s.peekN(1).Kind == token.Colon {
			s.next()
			s.next()
		}
		if err := parseType(s); err != nil {
			return err
		}
		if !s.eat(token.Comma) {
			break
		}
	}
	if _, err := s.expect(token.RParen, diag.SynUnclosedDelimiter, "`)`"); err != nil {
		return err
	}
	if s.eat(token.Arrow) {
		return parseType(s)
	}
	return nil
}

// skipConstExpr пропускает выражение длины массива до закрывающего токена.
func skipConstExpr(s *stream, closer token.Kind) error {
	if s.at(closer) {
		return s.errorf(diag.SynExpectType, "array length")
	}
	for !s.at(closer) {
		switch s.peek().Kind {
		case token.EOF:
			return s.errorf(diag.SynUnclosedDelimiter, "`]`")
		case token.LParen, token.LBracket, token.LBrace:
			if err := skipDelimited(s); err != nil {
				return err
			}
		default:
			s.next()
		}
	}
	return nil
}

// skipDelimited consumes a balanced (), [] or {} group.
func skipDelimited(s *stream) error {
	var stack []token.Kind
	for {
		tok := s.peek()
		switch tok.Kind {
		case token.LParen:
			stack = append(stack, token.RParen)
		case token.LBracket:
			stack = append(stack, token.RBracket)
		case token.LBrace:
			stack = append(stack, token.RBrace)
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 || stack[len(stack)-1] != tok.Kind {
				return s.errorf(diag.SynUnclosedDelimiter, "matching delimiter")
			}
			stack = stack[:len(stack)-1]
		case token.EOF:
			return s.errorf(diag.SynUnclosedDelimiter, "closing delimiter")
		}
		s.next()
		if len(stack) == 0 {
			return nil
		}
	}
}
