package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tok(forms ...string) QueryToken {
	return QueryToken{Raw: forms[0], Forms: forms}
}

func TestFindCompleteRequiresEveryToken(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"rue", "de", "la", "paix"})
	idx.Add(2, []string{"rue", "saint", "denis"})

	got := idx.FindComplete([]QueryToken{tok("rue"), tok("paix")})
	assert.Equal(t, []int{1}, got)
}

func TestFindCompleteReturnsNilWhenAnyTokenMisses(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"rue", "de", "la", "paix"})

	got := idx.FindComplete([]QueryToken{tok("rue"), tok("nowhere")})
	assert.Nil(t, got)
}

func TestFindCompleteTriesEveryCandidateForm(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"street", "denis"})

	got := idx.FindComplete([]QueryToken{{Raw: "st", Forms: []string{"st", "street"}}, tok("denis")})
	assert.Equal(t, []int{1}, got)
}

func TestFindPartialWithPatternMatchesLastTokenAsPrefix(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"rue", "denis"})
	idx.Add(2, []string{"rue", "deneuve"})

	last := QueryToken{Raw: "den", Forms: []string{"den"}, IsLast: true}
	got := idx.FindPartialWithPattern([]QueryToken{tok("rue"), last})
	assert.ElementsMatch(t, []int{1, 2}, got)
}

func TestFindPartialWithPatternNonLastTokensMustMatchExactly(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"rue", "denis"})

	first := QueryToken{Raw: "ru", Forms: []string{"ru"}}
	last := QueryToken{Raw: "den", Forms: []string{"den"}, IsLast: true}
	got := idx.FindPartialWithPattern([]QueryToken{first, last})
	assert.Nil(t, got, "a non-last token is not prefix-matched, only exact")
}

func TestTermCount(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"rue", "de", "la", "paix"})
	assert.Equal(t, 4, idx.TermCount(1))
	assert.Equal(t, 0, idx.TermCount(2))
}

func TestFindCompleteEmptyQueryReturnsNil(t *testing.T) {
	idx := NewIndex[int]()
	idx.Add(1, []string{"rue"})
	assert.Nil(t, idx.FindComplete(nil))
}
