package lexer

import "github.com/sxdgo/xpath/internal/token"

// Source is anything that produces tokens one at a time, satisfied by
// *Lexer itself and by each stream filter below.
type Source interface {
	Next() (token.Token, error)
}

// Deabbreviator expands XPath's abbreviated syntax into its
// unabbreviated token sequence, using a small internal buffer since each
// abbreviation expands to more than one token. It must run before the
// Disambiguator so the Name(...)( sequences it introduces are classified
// correctly.
type Deabbreviator struct {
	src     Source
	pending []token.Token
}

// NewDeabbreviator wraps src.
func NewDeabbreviator(src Source) *Deabbreviator {
	return &Deabbreviator{src: src}
}

func nodeTestNode() []token.Token {
	return []token.Token{
		{Kind: token.DoubleColon},
		{Kind: token.Name, Str: "node"},
		{Kind: token.LeftParen},
		{Kind: token.RightParen},
	}
}

// Next returns the next token, expanding abbreviations as needed. Errors
// from the underlying source pass through unchanged.
func (d *Deabbreviator) Next() (token.Token, error) {
	if len(d.pending) > 0 {
		t := d.pending[0]
		d.pending = d.pending[1:]
		return t, nil
	}

	tok, err := d.src.Next()
	if err != nil {
		return token.Token{}, err
	}

	switch tok.Kind {
	case token.AtSign:
		d.pending = []token.Token{{Kind: token.DoubleColon}}
		return token.Token{Kind: token.Name, Str: "attribute"}, nil
	case token.DoubleSlash:
		d.pending = append([]token.Token{
			{Kind: token.Name, Str: "descendant-or-self"},
		}, append(nodeTestNode(), token.Token{Kind: token.Slash})...)
		return token.Token{Kind: token.Slash}, nil
	case token.CurrentNode:
		d.pending = append([]token.Token{{Kind: token.Name, Str: "self"}}, nodeTestNode()...)
		first := d.pending[0]
		d.pending = d.pending[1:]
		return first, nil
	case token.ParentNode:
		d.pending = append([]token.Token{{Kind: token.Name, Str: "parent"}}, nodeTestNode()...)
		first := d.pending[0]
		d.pending = d.pending[1:]
		return first, nil
	default:
		return tok, nil
	}
}
