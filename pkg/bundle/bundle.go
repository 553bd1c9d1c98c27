// Package bundle defines the versioned content-pack format consumed
// by the importer: a YAML manifest naming a target content version and
// a set of JSON bundle files, one per language. The package is pure;
// file access belongs to the importer.
package bundle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Manifest declares one content release: the version it brings the
// store to and the files that make it up. Paths are relative to the
// pack directory.
type Manifest struct {
	// Version is the content version this pack represents, a
	// date-like comparable string such as "2026.08".
	Version string `yaml:"version"`

	// Languages is the path of the language reference file.
	Languages string `yaml:"languages"`

	// Concepts is the path of the concept reference file.
	Concepts string `yaml:"concepts"`

	// Words lists the per-language word bundle files.
	Words []string `yaml:"words"`
}

// ParseManifest decodes and validates a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("malformed manifest: %w", err)
	}
	if m.Version == "" {
		return nil, fmt.Errorf("manifest declares no version")
	}
	return &m, nil
}

// Bundle is one language's word records from a single bundle file.
type Bundle struct {
	LanguageID string       `json:"language_id"`
	Words      []WordRecord `json:"words"`
}

// WordRecord is one candidate word entry as it appears in a pack.
type WordRecord struct {
	Word              string `json:"word"`
	Meaning           string `json:"meaning"`
	MeaningAlt        string `json:"meaning_alt,omitempty"`
	Romanization      string `json:"romanization,omitempty"`
	PronunciationHint string `json:"pronunciation_hint,omitempty"`
	Category          string `json:"category,omitempty"`
	FrequencyRank     int    `json:"frequency_rank,omitempty"`
	ConceptID         string `json:"concept_id,omitempty"`
	Tone              *int   `json:"tone,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// LanguageRecord is one language reference entry.
type LanguageRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	NativeName     string `json:"native_name,omitempty"`
	Family         string `json:"family,omitempty"`
	Subfamily      string `json:"subfamily,omitempty"`
	Script         string `json:"script,omitempty"`
	DifficultyTier int    `json:"difficulty_tier,omitempty"`
}

// LanguageFile is the language reference file layout.
type LanguageFile struct {
	Languages []LanguageRecord `json:"languages"`
}

// ConceptRecord is one concept reference entry.
type ConceptRecord struct {
	ID            string `json:"id"`
	Meaning       string `json:"meaning"`
	MeaningAlt    string `json:"meaning_alt,omitempty"`
	Category      string `json:"category,omitempty"`
	FrequencyRank int    `json:"frequency_rank,omitempty"`
	EtymologyNote string `json:"etymology_note,omitempty"`
	MnemonicHint  string `json:"mnemonic_hint,omitempty"`
}

// ConceptFile is the concept reference file layout.
type ConceptFile struct {
	Concepts []ConceptRecord `json:"concepts"`
}

// ParseBundle decodes one word bundle file. Structural errors and a
// missing language id make the whole bundle malformed; per-record
// problems are left for Validate so they can be reported per record.
func ParseBundle(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("malformed bundle: %w", err)
	}
	if b.LanguageID == "" {
		return nil, fmt.Errorf("bundle declares no language_id")
	}
	return &b, nil
}

// ParseLanguages decodes the language reference file.
func ParseLanguages(data []byte) ([]LanguageRecord, error) {
	var f LanguageFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed language file: %w", err)
	}
	for _, l := range f.Languages {
		if l.ID == "" || l.Name == "" {
			return nil, fmt.Errorf("language record without id or name")
		}
	}
	return f.Languages, nil
}

// ParseConcepts decodes the concept reference file.
func ParseConcepts(data []byte) ([]ConceptRecord, error) {
	var f ConceptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("malformed concept file: %w", err)
	}
	for _, c := range f.Concepts {
		if c.ID == "" {
			return nil, fmt.Errorf("concept record without id")
		}
	}
	return f.Concepts, nil
}

// Validate checks the fields required for import. Records failing
// validation are rejected at the boundary, never partially applied.
func (w WordRecord) Validate() error {
	if strings.TrimSpace(w.Word) == "" {
		return fmt.Errorf("empty word text")
	}
	if strings.TrimSpace(w.Meaning) == "" {
		return fmt.Errorf("empty meaning")
	}
	return nil
}

// Key is the natural key of a word within one language: the minimal
// stable tuple used for duplicate detection across pack versions.
type Key struct {
	Word    string
	Meaning string
}

// NaturalKey returns the record's duplicate-detection key.
func (w WordRecord) NaturalKey() Key {
	return Key{Word: w.Word, Meaning: w.Meaning}
}

// wordNamespace scopes UUID v5 generation for word records.
var wordNamespace = uuid.MustParse("8f14b7a0-52cb-5a8e-9d20-6d7f3a8f4b11")

// RecordUID derives a deterministic UUID v5 for a word record from
// its language and natural key. Re-importing the same record under
// any version yields the same UID.
func RecordUID(languageID string, k Key) string {
	seed := languageID + "\x1f" + k.Word + "\x1f" + k.Meaning
	return uuid.NewSHA1(wordNamespace, []byte(seed)).String()
}

// cefrPrefix marks an embedded difficulty tag inside free-text notes.
const cefrPrefix = "cefr:"

// DecodeCEFR extracts a `cefr:<level>` tag from free-text notes and
// returns the normalized level, e.g. "A1" or "B2". Returns "" when no
// valid tag is present. Only the first tag is considered.
func DecodeCEFR(notes string) string {
	for _, field := range strings.Fields(notes) {
		f := strings.ToLower(field)
		if !strings.HasPrefix(f, cefrPrefix) {
			continue
		}
		level := strings.ToUpper(strings.Trim(field[len(cefrPrefix):], ",;"))
		if validCEFR(level) {
			return level
		}
	}
	return ""
}

func validCEFR(level string) bool {
	switch level {
	case "A1", "A2", "B1", "B2", "C1", "C2":
		return true
	}
	return false
}
