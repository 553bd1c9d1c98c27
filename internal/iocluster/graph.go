// Package iocluster builds the in-memory concept graph: words grouped
// by shared concept id and language family, used to select
// cross-language comparison sets. The graph is derived from the store
// on demand and never written back.
package iocluster

import (
	"context"
	"sort"
	"strings"

	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/polyglothq/polydb/pkg/schema"
)

// Entry is one word inside a concept group, joined with its language
// and learned state.
type Entry struct {
	Word     schema.Word
	Language schema.Language

	// Learned is true when the word has a review card.
	Learned bool
}

// Graph is an immutable snapshot of the concept graph.
type Graph struct {
	concepts  map[string]schema.Concept
	byConcept map[string][]Entry
	languages map[string]schema.Language
}

// Build derives a fresh graph from the store.
func Build(ctx context.Context, op *iostore.Operator) (*Graph, error) {
	db := op.DB().WithContext(ctx)

	var langs []schema.Language
	if err := db.Find(&langs).Error; err != nil {
		return nil, err
	}
	langByID := make(map[string]schema.Language, len(langs))
	for _, l := range langs {
		langByID[l.ID] = l
	}

	var concepts []schema.Concept
	if err := db.Find(&concepts).Error; err != nil {
		return nil, err
	}
	conceptByID := make(map[string]schema.Concept, len(concepts))
	for _, c := range concepts {
		conceptByID[c.ID] = c
	}

	var words []schema.Word
	err := db.Where("concept_id <> ''").Find(&words).Error
	if err != nil {
		return nil, err
	}

	var learnedIDs []uint
	err = db.Model(&schema.ReviewCard{}).
		Pluck("word_id", &learnedIDs).Error
	if err != nil {
		return nil, err
	}
	learned := make(map[uint]bool, len(learnedIDs))
	for _, id := range learnedIDs {
		learned[id] = true
	}

	byConcept := make(map[string][]Entry)
	for _, w := range words {
		byConcept[w.ConceptID] = append(byConcept[w.ConceptID], Entry{
			Word:     w,
			Language: langByID[w.LanguageID],
			Learned:  learned[w.ID],
		})
	}
	// Stable display order within a group: family, subfamily, name.
	for _, entries := range byConcept {
		sort.Slice(entries, func(i, j int) bool {
			a, b := entries[i].Language, entries[j].Language
			if a.Family != b.Family {
				return a.Family < b.Family
			}
			if a.Subfamily != b.Subfamily {
				return a.Subfamily < b.Subfamily
			}
			return a.Name < b.Name
		})
	}

	return &Graph{
		concepts:  conceptByID,
		byConcept: byConcept,
		languages: langByID,
	}, nil
}

// Concept returns the reference data for a concept id.
func (g *Graph) Concept(id string) (schema.Concept, bool) {
	c, ok := g.concepts[id]
	return c, ok
}

// Entries returns every word expressing the concept, ordered by
// language family, subfamily, then name.
func (g *Graph) Entries(conceptID string) []Entry {
	return g.byConcept[conceptID]
}

// ComparisonSet groups the concept's words by language family,
// optionally restricted to the given families.
func (g *Graph) ComparisonSet(
	conceptID string,
	families ...string,
) map[string][]Entry {
	var allow map[string]bool
	if len(families) > 0 {
		allow = make(map[string]bool, len(families))
		for _, f := range families {
			allow[f] = true
		}
	}

	set := make(map[string][]Entry)
	for _, e := range g.byConcept[conceptID] {
		f := e.Language.Family
		if allow != nil && !allow[f] {
			continue
		}
		set[f] = append(set[f], e)
	}
	return set
}

// SearchConcepts returns concepts whose id or meanings contain the
// query, case-insensitively, ordered by frequency rank.
func (g *Graph) SearchConcepts(query string) []schema.Concept {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var res []schema.Concept
	for _, c := range g.concepts {
		if strings.Contains(strings.ToLower(c.ID), q) ||
			strings.Contains(strings.ToLower(c.Meaning), q) ||
			strings.Contains(strings.ToLower(c.MeaningAlt), q) {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].FrequencyRank != res[j].FrequencyRank {
			return res[i].FrequencyRank < res[j].FrequencyRank
		}
		return res[i].ID < res[j].ID
	})
	return res
}

// Families returns the distinct language families present in the
// store, sorted.
func (g *Graph) Families() []string {
	seen := make(map[string]bool)
	for _, l := range g.languages {
		if l.Family != "" {
			seen[l.Family] = true
		}
	}
	families := make([]string, 0, len(seen))
	for f := range seen {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}
