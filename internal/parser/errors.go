package parser

import "fmt"

// Kind is the parser's error taxonomy.
type Kind int

const (
	RanOutOfInput Kind = iota
	UnexpectedToken
	RightHandSideExpressionMissing
	ExtraUnparsedTokens
	TokenizerError
	EmptyPredicate
	TrailingSlash
	InvalidAxis
	InvalidNodeTest
)

func (k Kind) String() string {
	switch k {
	case RanOutOfInput:
		return "RanOutOfInput"
	case UnexpectedToken:
		return "UnexpectedToken"
	case RightHandSideExpressionMissing:
		return "RightHandSideExpressionMissing"
	case ExtraUnparsedTokens:
		return "ExtraUnparsedTokens"
	case TokenizerError:
		return "TokenizerError"
	case EmptyPredicate:
		return "EmptyPredicate"
	case TrailingSlash:
		return "TrailingSlash"
	case InvalidAxis:
		return "InvalidAxis"
	case InvalidNodeTest:
		return "InvalidNodeTest"
	default:
		return "Unknown"
	}
}

// Error is a single tagged-variant parse error, never a panic.
type Error struct {
	Kind Kind
	Name string // populated for InvalidAxis/InvalidNodeTest
	Msg  string // populated for TokenizerError and free-form detail
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidAxis:
		return fmt.Sprintf("invalid axis: %s", e.Name)
	case InvalidNodeTest:
		return fmt.Sprintf("invalid node test: %s", e.Name)
	case TokenizerError:
		return fmt.Sprintf("tokenizer error: %s", e.Msg)
	default:
		if e.Msg != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		}
		return e.Kind.String()
	}
}
