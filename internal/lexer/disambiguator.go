package lexer

import "github.com/sxdgo/xpath/internal/token"

// nodeTestNames are the NCNames that denote a node test rather than a
// function call when immediately followed by "(".
var nodeTestNames = map[string]bool{
	"comment":                true,
	"text":                   true,
	"processing-instruction": true,
	"node":                   true,
}

// Disambiguator resolves XPath's other lexical ambiguity: a bare Name
// token is only a function call, axis name, or node test depending on
// what follows it. It holds a single token of lookahead.
type Disambiguator struct {
	src     Source
	lookAhd *token.Token
	lookErr error
	primed  bool
}

// NewDisambiguator wraps src.
func NewDisambiguator(src Source) *Disambiguator {
	return &Disambiguator{src: src}
}

func (d *Disambiguator) fill() (token.Token, error) {
	if d.primed {
		t, err := *d.lookAhd, d.lookErr
		d.primed = false
		return t, err
	}
	return d.src.Next()
}

func (d *Disambiguator) peek() (token.Token, error) {
	if !d.primed {
		t, err := d.src.Next()
		d.lookAhd = &t
		d.lookErr = err
		d.primed = true
	}
	return *d.lookAhd, d.lookErr
}

// Next returns the next token, rewriting Name tokens as needed.
func (d *Disambiguator) Next() (token.Token, error) {
	cur, err := d.fill()
	if err != nil {
		return token.Token{}, err
	}
	if cur.Kind != token.Name {
		return cur, nil
	}

	next, nextErr := d.peek()
	if nextErr != nil {
		// propagate the value now; the error will be returned on the
		// following call once peek is re-consumed.
		return cur, nil
	}

	switch next.Kind {
	case token.LeftParen:
		if nodeTestNames[cur.Str] {
			return token.Token{Kind: token.NodeTest, Str: cur.Str}, nil
		}
		return token.Token{Kind: token.Function, Str: cur.Str}, nil
	case token.DoubleColon:
		return token.Token{Kind: token.Axis, Str: cur.Str}, nil
	default:
		return cur, nil
	}
}
