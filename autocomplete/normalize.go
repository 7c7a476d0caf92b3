package autocomplete

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform strips combining marks after NFD decomposition, the
// standard golang.org/x/text recipe for accent folding ("é" -> "e").
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldAccents strips diacritics from s; it does not change case (the
// caller lowercases first).
func foldAccents(s string) string {
	folded, _, err := transform.String(foldTransform, s)
	if err != nil {
		// transform.String only errors on malformed input the
		// transformer can't make progress on; fall back to the
		// unfolded (but still lowercased by the caller) string
		// rather than losing the token entirely.
		return s
	}
	return folded
}

// isTokenRune reports whether r is part of a token (letters, digits)
// rather than a separator (whitespace, punctuation).
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Tokenize splits q on whitespace and punctuation, lowercases and
// accent-folds each piece. Per SPEC_FULL §4.3.
func Tokenize(q string) []string {
	lower := strings.ToLower(q)
	fields := strings.FieldsFunc(lower, func(r rune) bool { return !isTokenRune(r) })
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = foldAccents(f)
	}
	return tokens
}

// QueryToken is one normalized query token plus every alternate form
// (via alias rewrite and synonym expansion) that should be tried
// against the index when matching this position.
type QueryToken struct {
	Raw    string
	Forms  []string // candidate stored-term forms, Raw always included
	IsLast bool
}

// NormalizeQuery tokenizes q and expands each token through alias
// (1-to-1 rewrite) and synonyms (1-to-many expansion), per §4.3.
func NormalizeQuery(q string, t *Tables) []QueryToken {
	raw := Tokenize(q)
	out := make([]QueryToken, len(raw))
	for i, tok := range raw {
		forms := []string{tok}
		if t != nil {
			if alias, ok := t.Alias[tok]; ok {
				forms = []string{alias}
			}
			if syns, ok := t.Synonyms[forms[0]]; ok {
				forms = append(append([]string{}, forms...), syns...)
			}
		}
		out[i] = QueryToken{Raw: tok, Forms: forms, IsLast: i == len(raw)-1}
	}
	return out
}

// LooksLikeNumber reports whether tok is composed entirely of digits
// (used by the address-intent analyzer, §4.5 step 2).
func LooksLikeNumber(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsAddressType reports whether q carries address intent: a token that
// looks like a house number, or a token that resolves (directly or via
// alias) to an entry in t's synonym table, per §4.5 step 2. The result
// flips penaltyByType between its two documented modes.
func IsAddressType(q string, t *Tables) bool {
	for _, tok := range Tokenize(q) {
		if LooksLikeNumber(tok) {
			return true
		}
		if t == nil {
			continue
		}
		form := tok
		if alias, ok := t.Alias[form]; ok {
			form = alias
		}
		if _, ok := t.Synonyms[form]; ok {
			return true
		}
	}
	return false
}
