package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLowercasesAndFoldsAccents(t *testing.T) {
	assert.Equal(t, []string{"rue", "de", "la", "paix"}, Tokenize("Rue de la Paix"))
	assert.Equal(t, []string{"elysee"}, Tokenize("Élysée"))
}

func TestTokenizeSplitsOnPunctuation(t *testing.T) {
	assert.Equal(t, []string{"saint", "lazare"}, Tokenize("Saint-Lazare"))
}

func TestLooksLikeNumber(t *testing.T) {
	assert.True(t, LooksLikeNumber("42"))
	assert.False(t, LooksLikeNumber("42nd"))
	assert.False(t, LooksLikeNumber(""))
}

func TestNormalizeQueryAppliesAlias(t *testing.T) {
	tables := &Tables{Alias: map[string]string{"st": "street"}}
	tokens := NormalizeQuery("st denis", tables)
	assert.Equal(t, []string{"street"}, tokens[0].Forms)
	assert.Equal(t, "st", tokens[0].Raw)
	assert.True(t, tokens[1].IsLast)
}

func TestNormalizeQueryExpandsSynonyms(t *testing.T) {
	tables := &Tables{Synonyms: map[string][]string{"street": {"st", "str"}}}
	tokens := NormalizeQuery("street denis", tables)
	assert.ElementsMatch(t, []string{"street", "st", "str"}, tokens[0].Forms)
}

func TestNormalizeQueryNoTablesKeepsRawForm(t *testing.T) {
	tokens := NormalizeQuery("denis", nil)
	assert.Equal(t, []string{"denis"}, tokens[0].Forms)
}
