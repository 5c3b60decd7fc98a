// Package syntax is a best-effort lexical colorizer for the handful of
// languages the tutorials cover. It is not a parser: it never fails on
// malformed code, it just colors what it recognizes and leaves the rest
// plain.
package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// keywords is the union of the keyword sets of the supported languages.
// A miss here only costs a color, so erring small is fine.
var keywords = map[string]bool{
	// shared
	"if": true, "else": true, "for": true, "while": true, "return": true,
	"break": true, "continue": true, "switch": true, "case": true,
	"new": true, "class": true, "import": true, "try": true, "catch": true,
	"finally": true, "throw": true, "in": true, "do": true,
	// javascript
	"const": true, "let": true, "var": true, "function": true,
	"async": true, "await": true, "of": true, "typeof": true,
	"this": true, "null": true, "undefined": true, "true": true, "false": true,
	"export": true, "from": true, "yield": true,
	// python
	"def": true, "elif": true, "except": true, "lambda": true,
	"pass": true, "with": true, "as": true, "not": true, "and": true,
	"or": true, "is": true, "None": true, "True": true, "False": true,
	"self": true, "raise": true, "global": true,
	// go
	"func": true, "package": true, "type": true, "struct": true,
	"interface": true, "range": true, "go": true, "defer": true,
	"chan": true, "select": true, "fallthrough": true, "nil": true,
	// java
	"public": true, "private": true, "protected": true, "static": true,
	"void": true, "extends": true, "implements": true, "final": true,
	"throws": true, "instanceof": true, "abstract": true,
}

// builtins are well-known call targets that read better in their own
// color than as generic function calls. Dotted names are matched whole.
var builtins = []string{
	"console.log",
	"console.error",
	"console.warn",
	"System.out.println",
	"System.out.print",
	"fmt.Println",
	"fmt.Printf",
	"fmt.Sprintf",
	"fmt.Print",
	"JSON.stringify",
	"JSON.parse",
	"Math.floor",
	"Math.ceil",
	"Math.round",
	"Math.max",
	"Math.min",
	"Object.keys",
	"Object.values",
	"print",
	"println",
	"len",
	"range",
	"input",
	"str",
	"int",
	"float",
	"append",
	"make",
	"parseInt",
	"parseFloat",
}

const operatorChars = "+-*/%=<>!&|"

// Tokenize splits one line of source into colored spans. The spans
// partition the line exactly; no input ever makes it fail.
func Tokenize(line string) []Token {
	var tokens []Token
	pos := 0

	for pos < len(line) {
		tok := matchAt(line, pos)
		tokens = append(tokens, tok)
		pos += len(tok.Text)
	}

	return tokens
}

// matchAt tries each rule in precedence order and always returns a
// token of at least one byte, so the scan always advances.
func matchAt(line string, pos int) Token {
	rest := line[pos:]

	if name := matchBuiltin(rest); name != "" {
		return Token{Text: name, Kind: KindBuiltin}
	}
	if word := matchKeyword(rest); word != "" {
		return Token{Text: word, Kind: KindKeyword}
	}
	if lit := matchString(rest); lit != "" {
		return Token{Text: lit, Kind: KindString}
	}
	if num := matchNumber(rest); num != "" {
		return Token{Text: num, Kind: KindNumber}
	}
	if com := matchComment(rest); com != "" {
		return Token{Text: com, Kind: KindComment}
	}
	if ops := matchOperatorRun(rest); ops != "" {
		return Token{Text: ops, Kind: KindOperator}
	}
	if call := matchFunctionCall(rest); call != "" {
		return Token{Text: call, Kind: KindFunction}
	}
	if strings.ContainsRune("()[]{}.,:;", rune(rest[0])) {
		return Token{Text: rest[:1], Kind: KindBracket}
	}
	return Token{Text: matchDefault(rest), Kind: KindDefault}
}

func matchBuiltin(rest string) string {
	for _, name := range builtins {
		if strings.HasPrefix(rest, name) && !identContinues(rest, len(name)) {
			return name
		}
	}
	return ""
}

func matchKeyword(rest string) string {
	word := leadingIdent(rest)
	if word != "" && keywords[word] && !identContinues(rest, len(word)) {
		return word
	}
	return ""
}

// matchString consumes a single- or double-quoted literal, stopping at
// the first closing quote. An unterminated literal colors to end of line.
func matchString(rest string) string {
	quote := rest[0]
	if quote != '\'' && quote != '"' {
		return ""
	}
	if end := strings.IndexByte(rest[1:], quote); end >= 0 {
		return rest[:end+2]
	}
	return rest
}

func matchNumber(rest string) string {
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return ""
	}
	if end < len(rest) && rest[end] == '.' {
		frac := end + 1
		for frac < len(rest) && rest[frac] >= '0' && rest[frac] <= '9' {
			frac++
		}
		if frac > end+1 {
			end = frac
		}
	}
	return rest[:end]
}

func matchComment(rest string) string {
	if strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "#") {
		return rest
	}
	if strings.HasPrefix(rest, "/*") {
		if end := strings.Index(rest[2:], "*/"); end >= 0 {
			return rest[:end+4]
		}
		return rest
	}
	return ""
}

func matchOperatorRun(rest string) string {
	end := 0
	for end < len(rest) && strings.IndexByte(operatorChars, rest[end]) >= 0 {
		end++
	}
	return rest[:end]
}

// matchFunctionCall colors an identifier immediately followed by an
// open paren. The paren itself is left for the bracket rule.
func matchFunctionCall(rest string) string {
	word := leadingIdent(rest)
	if word != "" && len(word) < len(rest) && rest[len(word)] == '(' {
		return word
	}
	return ""
}

// matchDefault consumes a whitespace run, an identifier run, or failing
// both a single rune, so the caller always advances.
func matchDefault(rest string) string {
	if rest[0] == ' ' || rest[0] == '\t' {
		end := 0
		for end < len(rest) && (rest[end] == ' ' || rest[end] == '\t') {
			end++
		}
		return rest[:end]
	}
	if word := leadingIdent(rest); word != "" {
		return word
	}
	_, size := utf8.DecodeRuneInString(rest)
	return rest[:size]
}

// leadingIdent returns the identifier run at the start of rest, or "".
func leadingIdent(rest string) string {
	end := 0
	for end < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[end:])
		if r == '_' || unicode.IsLetter(r) || (end > 0 && unicode.IsDigit(r)) {
			end += size
			continue
		}
		break
	}
	return rest[:end]
}

func identContinues(rest string, at int) bool {
	if at >= len(rest) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(rest[at:])
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
