package embedding

import "strings"

// stopWords is the fixed removal list applied when stop-word filtering is
// enabled. SQL keywords that generators key on (on, set, null, ...) are
// deliberately not in this list.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "in": {},
	"is": {}, "it": {}, "its": {}, "of": {}, "or": {}, "that": {},
	"the": {}, "to": {}, "was": {}, "were": {}, "will": {}, "with": {},
}

// Tokenize lowercases text, splits it on whitespace, and splits off
// parentheses, commas, and semicolons as standalone tokens, so that
// "foo(bar)" becomes ["foo", "(", "bar", ")"]. Empty tokens are dropped.
// Pure and deterministic.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, splitPunctuation(f)...)
	}
	return tokens
}

// StripStopWords removes fixed-list stop words from tokens, preserving order.
func StripStopWords(tokens []string) []string {
	out := tokens[:0:0]
	for _, tok := range tokens {
		if _, ok := stopWords[tok]; !ok {
			out = append(out, tok)
		}
	}
	return out
}

// splitPunctuation breaks a whitespace-delimited field into word and
// punctuation tokens.
func splitPunctuation(field string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range field {
		switch r {
		case '(', ')', ',', ';':
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
			out = append(out, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
