// parser.go — recursive-descent value parser over the token stream.
//
// OVERVIEW
// --------
// This module consumes tokens produced on demand by the Tokenizer
// (lexer.go) and builds the value tree (value.go). The grammar:
//
//	value    := object | array | string | number | "true" | "false" | "null"
//	object   := "{" ( member ( "," member )* )? "}"
//	member   := string ":" value
//	array    := "[" ( value ( "," value )* )? "]"
//
// Anything left in the buffer after the top-level value is an error.
//
// Failure semantics are fail-fast: the first violation aborts the whole
// parse with a *ParseError located at the offending byte; no partial
// value is returned and no resynchronization is attempted. Parsing is
// a pure computation over the immutable Source, so concurrent Parse
// calls over the same Source need no locking.
//
// Object members keep insertion order; a duplicate key replaces the
// earlier value in place (last wins).
//
// Dependencies
// ------------
//   - lexer.go (Tokenizer, Token)
//   - errors.go (*ParseError, incomplete marking)
//   - value.go (the produced tree)
package jsonsrc

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse parses source's whole buffer into a value tree under options.
// On any grammar violation it returns a *ParseError carrying the
// formatted location of the first offending byte.
func Parse(source *Source, options ParseOptions) (Value, error) {
	p := &parser{tz: NewTokenizer(source, options)}
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, p.errAtCur("trailing input after top-level value")
	}
	return v, nil
}

// ParseString parses an in-memory buffer, constructing a throwaway
// Source named fileName. Convenience for tests and REPLs.
func ParseString(fileName, contents string, options ParseOptions) (Value, error) {
	return Parse(NewSourceString(fileName, contents), options)
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	tz  *Tokenizer
	cur Token
}

// next pulls the following token into p.cur.
func (p *parser) next() error {
	t, err := p.tz.Next()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *parser) curLocation() Location {
	return p.tz.locationAt(p.cur.Index)
}

// errAtCur raises msg at the current token. The tokenizer marks errors
// sitting at end of buffer as incomplete.
func (p *parser) errAtCur(msg string) *ParseError {
	return p.tz.errAt(p.cur.Index, msg)
}

func (p *parser) parseValue() (Value, error) {
	loc := p.curLocation()
	switch p.cur.Type {
	case TokenLCurly:
		return p.parseObject()
	case TokenLSquare:
		return p.parseArray()
	case TokenString:
		v := &String{Loc: loc, Value: p.cur.Str}
		return v, p.next()
	case TokenNumber:
		v := &Number{Loc: loc, Value: p.cur.Num}
		return v, p.next()
	case TokenTrue:
		return &Boolean{Loc: loc, Value: true}, p.next()
	case TokenFalse:
		return &Boolean{Loc: loc, Value: false}, p.next()
	case TokenNull:
		return &Null{Loc: loc}, p.next()
	case TokenEOF:
		return nil, p.errAtCur("premature end of input: expected a value")
	}
	return nil, p.errAtCur("expected a value, found " + p.cur.Type.String())
}

func (p *parser) parseObject() (Value, error) {
	obj := &Object{Loc: p.curLocation()}
	if err := p.next(); err != nil { // consume '{'
		return nil, err
	}
	if p.cur.Type == TokenRCurly {
		return obj, p.next()
	}
	for {
		if p.cur.Type != TokenString {
			if p.cur.Type == TokenEOF {
				return nil, p.errAtCur("premature end of input: object missing '}'")
			}
			return nil, p.errAtCur("expected a string as object member name")
		}
		name := p.cur.Str
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.cur.Type != TokenColon {
			if p.cur.Type == TokenEOF {
				return nil, p.errAtCur("premature end of input: expected ':' after object member name")
			}
			return nil, p.errAtCur("expected ':' after object member name")
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.set(name, v)
		switch p.cur.Type {
		case TokenComma:
			if err := p.next(); err != nil {
				return nil, err
			}
		case TokenRCurly:
			return obj, p.next()
		case TokenEOF:
			return nil, p.errAtCur("premature end of input: object missing '}'")
		default:
			return nil, p.errAtCur("expected ',' or '}' in object")
		}
	}
}

func (p *parser) parseArray() (Value, error) {
	arr := &Array{Loc: p.curLocation()}
	if err := p.next(); err != nil { // consume '['
		return nil, err
	}
	if p.cur.Type == TokenRSquare {
		return arr, p.next()
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, v)
		switch p.cur.Type {
		case TokenComma:
			if err := p.next(); err != nil {
				return nil, err
			}
		case TokenRSquare:
			return arr, p.next()
		case TokenEOF:
			return nil, p.errAtCur("premature end of input: array missing ']'")
		default:
			return nil, p.errAtCur("expected ',' or ']' in array")
		}
	}
}
