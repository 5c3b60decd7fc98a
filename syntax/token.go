package syntax

// Kind classifies a span of source text for coloring.
type Kind int

const (
	KindDefault Kind = iota
	KindKeyword
	KindString
	KindNumber
	KindComment
	KindOperator
	KindFunction
	KindBuiltin
	KindBracket
)

// Token is one colored span of a source line. Tokens for a line are an
// exact partition: concatenating their Text reproduces the line.
type Token struct {
	Text string
	Kind Kind
}

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindComment:
		return "comment"
	case KindOperator:
		return "operator"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	case KindBracket:
		return "bracket"
	default:
		return "default"
	}
}
