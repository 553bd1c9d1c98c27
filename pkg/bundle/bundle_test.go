package bundle_test

import (
	"testing"

	"github.com/polyglothq/polydb/pkg/bundle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`
version: "2026.08"
languages: languages.json
concepts: concepts.json
words:
  - words_fr.json
  - words_pl.json
`)
	m, err := bundle.ParseManifest(data)
	require.NoError(t, err)

	assert.Equal(t, "2026.08", m.Version)
	assert.Equal(t, "languages.json", m.Languages)
	assert.Equal(t, "concepts.json", m.Concepts)
	assert.Equal(t, []string{"words_fr.json", "words_pl.json"}, m.Words)
}

func TestParseManifestBad(t *testing.T) {
	tests := []struct {
		msg  string
		data string
	}{
		{"not yaml", ":\n  - ["},
		{"missing version", "languages: languages.json"},
	}

	for _, v := range tests {
		_, err := bundle.ParseManifest([]byte(v.data))
		assert.Error(t, err, v.msg)
	}
}

func TestParseBundle(t *testing.T) {
	data := []byte(`{
  "language_id": "fr",
  "words": [
    {"word": "eau", "meaning": "water", "concept_id": "water",
     "frequency_rank": 12, "notes": "cefr:a1"},
    {"word": "", "meaning": "broken"}
  ]
}`)
	b, err := bundle.ParseBundle(data)
	require.NoError(t, err)

	assert.Equal(t, "fr", b.LanguageID)
	require.Len(t, b.Words, 2)

	// Record-level problems surface via Validate, not ParseBundle.
	assert.NoError(t, b.Words[0].Validate())
	assert.Error(t, b.Words[1].Validate())
}

func TestParseBundleBad(t *testing.T) {
	_, err := bundle.ParseBundle([]byte(`{"words": []}`))
	assert.Error(t, err, "missing language_id")

	_, err = bundle.ParseBundle([]byte(`{not json`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		msg     string
		rec     bundle.WordRecord
		isValid bool
	}{
		{"complete", bundle.WordRecord{Word: "woda", Meaning: "water"}, true},
		{"empty word", bundle.WordRecord{Meaning: "water"}, false},
		{"blank word", bundle.WordRecord{Word: "   ", Meaning: "water"}, false},
		{"empty meaning", bundle.WordRecord{Word: "woda"}, false},
	}

	for _, v := range tests {
		err := v.rec.Validate()
		if v.isValid {
			assert.NoError(t, err, v.msg)
		} else {
			assert.Error(t, err, v.msg)
		}
	}
}

func TestRecordUID(t *testing.T) {
	k := bundle.Key{Word: "eau", Meaning: "water"}

	uid1 := bundle.RecordUID("fr", k)
	uid2 := bundle.RecordUID("fr", k)
	assert.Equal(t, uid1, uid2, "same input, same UID")
	assert.Len(t, uid1, 36)

	// Any component changes the UID.
	assert.NotEqual(t, uid1, bundle.RecordUID("pl", k))
	assert.NotEqual(t, uid1,
		bundle.RecordUID("fr", bundle.Key{Word: "eau", Meaning: "rain"}))
}

func TestDecodeCEFR(t *testing.T) {
	tests := []struct {
		msg   string
		notes string
		level string
	}{
		{"bare tag", "cefr:a1", "A1"},
		{"uppercase tag", "CEFR:B2", "B2"},
		{"tag among words", "common greeting cefr:a2 informal", "A2"},
		{"trailing punctuation", "cefr:c1,", "C1"},
		{"first valid tag wins", "cefr:b1 cefr:c2", "B1"},
		{"invalid level", "cefr:d1", ""},
		{"no tag", "just a note", ""},
		{"empty", "", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.level, bundle.DecodeCEFR(v.notes), v.msg)
	}
}
