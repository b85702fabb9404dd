package parser

import (
	"monoforce/internal/diag"
	"monoforce/internal/mono"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

// parseFnHeader reads `[vis] [qualifiers] fn name [<generics>] (params)
// [-> ret] [where ...]` up to the body or `;`. It only looks ahead: the
// caller restores the position afterwards.
func (s *scanner) parseFnHeader(attrs []Attr) (FnItem, bool) {
	startTok := s.peek()

	if s.eat(token.KwPub) && s.at(token.LParen) {
		s.skipGroup()
	}
	for s.skipQualifier() {
	}

	if !s.at(token.KwFn) {
		found := s.peek()
		s.report(diag.SynExpectFnItem, attrs[0].Span, "`#["+attrs[0].Path+"]` can only be applied to a fn item").
			WithNote(found.Span, "found "+describe(found)+" instead").
			Emit()
		return FnItem{}, false
	}
	s.next()

	nameTok := s.peek()
	if nameTok.Kind != token.Ident {
		s.report(diag.SynExpectIdentifier, nameTok.Span, "expected fn name, found "+describe(nameTok)).Emit()
		return FnItem{}, false
	}
	s.next()

	item := FnItem{
		Attrs: attrs,
		Sig: mono.FnSig{
			Name:     nameTok.Text,
			NameSpan: nameTok.Span,
		},
	}

	if s.at(token.Lt) {
		params, ok := s.parseGenerics()
		if !ok {
			return FnItem{}, false
		}
		item.Sig.Generics = params
	}

	if !s.at(token.LParen) {
		s.report(diag.SynUnexpectedToken, s.peek().Span, "expected `(` after fn name, found "+describe(s.peek())).Emit()
		return FnItem{}, false
	}
	if closeIdx := s.skipGroup(); s.toks[closeIdx].Kind == token.EOF {
		return FnItem{}, false
	}
	last := s.toks[s.pos-1]

	if s.eat(token.Arrow) {
		if !s.skipToBody() {
			return FnItem{}, false
		}
		last = s.toks[s.pos-1]
	}
	if s.at(token.KwWhere) {
		s.next()
		if !s.skipToBody() {
			return FnItem{}, false
		}
		last = s.toks[s.pos-1]
	}

	if !s.at(token.LBrace) && !s.at(token.Semicolon) {
		s.report(diag.SynUnexpectedToken, s.peek().Span, "expected fn body or `;`, found "+describe(s.peek())).Emit()
		return FnItem{}, false
	}
	item.Sig.Span = startTok.Span.Cover(last.Span)
	return item, true
}

// skipQualifier съедает один из const/async/unsafe/safe/default/extern "abi".
func (s *scanner) skipQualifier() bool {
	tok := s.peek()
	switch tok.Kind {
	case token.KwAsync, token.KwUnsafe:
		s.next()
		return true
	case token.KwConst:
		// const fn, но не `const X: T`
		if k := s.peekN(1).Kind; k == token.KwFn || k == token.KwAsync || k == token.KwUnsafe || k == token.KwExtern {
			s.next()
			return true
		}
	case token.KwExtern:
		s.next()
		s.eat(token.StringLit)
		return true
	case token.Ident:
		if tok.Text == "default" || tok.Text == "safe" {
			s.next()
			return true
		}
	}
	return false
}

// skipToBody skips a return type or where clause up to `{` or `;` outside
// any brackets.
func (s *scanner) skipToBody() bool {
	angle := 0
	for {
		switch tok := s.peek(); tok.Kind {
		case token.EOF:
			s.report(diag.SynUnexpectedToken, tok.Span, "unexpected end of input in fn signature").Emit()
			return false
		case token.LBrace:
			if angle == 0 {
				return true
			}
			s.skipGroup() // const-аргумент вида Foo<{ N }>
		case token.Semicolon:
			if angle == 0 {
				return true
			}
			s.next()
		case token.LParen, token.LBracket:
			if s.toks[s.skipGroup()].Kind == token.EOF {
				return false
			}
		case token.Lt:
			angle++
			s.next()
		case token.Gt:
			if angle > 0 {
				angle--
			}
			s.next()
		default:
			s.next()
		}
	}
}

// parseGenerics reads `<'a: 'b, T: Bound = Default, const N: usize>`.
func (s *scanner) parseGenerics() ([]mono.GenericParam, bool) {
	lt := s.next()
	var params []mono.GenericParam
	for !s.at(token.Gt) {
		for s.at(token.Pound) && s.peekN(1).Kind == token.LBracket {
			if _, ok := s.parseAttr(); !ok {
				return nil, false
			}
		}

		tok := s.peek()
		switch tok.Kind {
		case token.Lifetime:
			s.next()
			params = append(params, mono.GenericParam{Kind: mono.ParamLifetime, Name: tok.Text, Span: tok.Span})
		case token.KwConst:
			s.next()
			name := s.peek()
			if name.Kind != token.Ident {
				s.report(diag.SynExpectIdentifier, name.Span, "expected const parameter name, found "+describe(name)).Emit()
				return nil, false
			}
			s.next()
			if !s.at(token.Colon) {
				s.report(diag.SynUnexpectedToken, s.peek().Span, "expected `:` and a type after const parameter").Emit()
				return nil, false
			}
			params = append(params, mono.GenericParam{Kind: mono.ParamConst, Name: name.Text, Span: tok.Span.Cover(name.Span)})
		case token.Ident:
			s.next()
			params = append(params, mono.GenericParam{Kind: mono.ParamType, Name: tok.Text, Span: tok.Span})
		default:
			s.report(diag.SynExpectIdentifier, tok.Span, "expected generic parameter, found "+describe(tok)).Emit()
			return nil, false
		}

		// bounds и default нам не нужны
		if !s.skipParamTail(lt.Span) {
			return nil, false
		}
		if !s.eat(token.Comma) {
			break
		}
	}
	if !s.at(token.Gt) {
		s.report(diag.SynUnclosedAngleBracket, s.peek().Span, "expected `,` or `>` in generic parameters, found "+describe(s.peek())).
			WithNote(lt.Span, "generic parameters start here").
			Emit()
		return nil, false
	}
	s.next()
	return params, true
}

// skipParamTail skips `: bounds` and `= default` up to the `,` or `>` that
// ends the parameter.
func (s *scanner) skipParamTail(open source.Span) bool {
	depth := 0
	for {
		switch tok := s.peek(); tok.Kind {
		case token.EOF:
			s.report(diag.SynUnclosedAngleBracket, open, "unclosed generic parameter list").Emit()
			return false
		case token.Comma:
			if depth == 0 {
				return true
			}
			s.next()
		case token.Gt:
			if depth == 0 {
				return true
			}
			depth--
			s.next()
		case token.Lt:
			depth++
			s.next()
		case token.LParen, token.LBracket, token.LBrace:
			if s.toks[s.skipGroup()].Kind == token.EOF {
				return false
			}
		default:
			s.next()
		}
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	default:
		return "`" + tok.Text + "`"
	}
}
