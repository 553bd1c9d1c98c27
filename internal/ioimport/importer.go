// Package ioimport implements the versioned content importer. It
// reads a content pack (manifest plus bundle files), inserts only
// records the store has not seen, and advances the content version
// marker, with all insertions for one version bump inside a single
// transaction.
package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/polyglothq/polydb/pkg/bundle"
	"github.com/polyglothq/polydb/pkg/config"
	"github.com/polyglothq/polydb/pkg/polydb"
	"github.com/polyglothq/polydb/pkg/schema"
	"gorm.io/gorm"
)

// importer implements the polydb.Importer interface.
type importer struct {
	cfg *config.Config
	op  *iostore.Operator
}

// New creates a new Importer.
func New(cfg *config.Config, op *iostore.Operator) polydb.Importer {
	return &importer{cfg: cfg, op: op}
}

// Import brings the store to the pack's declared content version.
// Re-running against an unchanged pack is a reported no-op.
func (p *importer) Import(ctx context.Context) (*polydb.ImportReport, error) {
	startTime := time.Now()

	pack, err := readPack(p.cfg)
	if err != nil {
		return nil, err
	}

	stored, err := p.op.Setting(ctx, schema.ContentVersionKey, "")
	if err != nil {
		return nil, err
	}

	report := &polydb.ImportReport{
		PreviousVersion: stored,
		TargetVersion:   pack.manifest.Version,
	}

	// Version gate. The marker only moves forward: an equal or newer
	// stored version short-circuits with zero writes.
	if stored != "" && stored >= pack.manifest.Version {
		report.UpToDate = true
		slog.Info("Content is up to date",
			"stored", stored, "target", pack.manifest.Version)
		return report, nil
	}

	slog.Info("Starting content import",
		"stored", stored, "target", pack.manifest.Version,
		"bundles", len(pack.bundles))

	for _, b := range pack.bundles {
		if b.err != nil {
			// Malformed bundles are excluded from the run and
			// reported; they do not abort the import.
			slog.Warn("Skipping malformed bundle",
				"file", b.file, "error", b.err)
			report.Bundles = append(report.Bundles, polydb.BundleReport{
				File: b.file,
				Err:  b.err.Error(),
			})
		}
	}

	index, err := p.loadKeyIndex(ctx, pack)
	if err != nil {
		return nil, err
	}

	plan := buildPlan(pack, index, report)

	err = p.op.Transaction(ctx, func(tx *gorm.DB) error {
		return p.applyPlan(tx, pack, plan, report)
	})
	if err != nil {
		// Rollback leaves prior state fully intact, marker included.
		return nil, ImportTxError(pack.manifest.Version, err)
	}

	slog.Info("Content import finished",
		"version", pack.manifest.Version,
		"languages", report.Languages,
		"concepts", report.Concepts,
		"words", humanize.Comma(int64(report.Words)),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return report, nil
}

// keyIndex maps, per language, every existing natural key to a
// payload fingerprint. Built once per run so duplicate checks stay
// near-linear in bundle size.
type keyIndex map[string]map[bundle.Key]string

// loadKeyIndex precomputes the existing-row index for every language
// the pack touches.
func (p *importer) loadKeyIndex(
	ctx context.Context,
	pack *packData,
) (keyIndex, error) {
	langIDs := make([]string, 0, len(pack.bundles))
	seen := make(map[string]bool)
	for _, b := range pack.bundles {
		if b.err == nil && !seen[b.data.LanguageID] {
			seen[b.data.LanguageID] = true
			langIDs = append(langIDs, b.data.LanguageID)
		}
	}
	index := make(keyIndex, len(langIDs))
	for _, id := range langIDs {
		index[id] = make(map[bundle.Key]string)
	}
	if len(langIDs) == 0 {
		return index, nil
	}

	var rows []schema.Word
	err := p.op.DB().WithContext(ctx).
		Select("language_id", "word", "meaning", "meaning_alt",
			"romanization", "category", "concept_id", "frequency_rank",
			"notes").
		Where("language_id IN ?", langIDs).
		Find(&rows).Error
	if err != nil {
		return nil, KeyIndexError(err)
	}

	for _, w := range rows {
		k := bundle.Key{Word: w.Word, Meaning: w.Meaning}
		index[w.LanguageID][k] = wordFingerprint(
			w.MeaningAlt, w.Romanization, w.Category,
			w.ConceptID, w.FrequencyRank, w.Notes)
	}
	return index, nil
}

// importPlan is the minimal set of insertions that brings the store
// to the target version, computed before the transaction opens.
type importPlan struct {
	words []schema.Word
}

// buildPlan walks every valid bundle record once, rejecting invalid
// records, skipping known natural keys, and collecting the rows to
// insert. Known keys with a differing payload are counted as
// conflicts: the existing row is the authority and is never
// overwritten.
func buildPlan(
	pack *packData,
	index keyIndex,
	report *polydb.ImportReport,
) *importPlan {
	plan := &importPlan{}

	for i := range pack.bundles {
		b := &pack.bundles[i]
		if b.err != nil {
			continue
		}
		br := polydb.BundleReport{
			File:       b.file,
			LanguageID: b.data.LanguageID,
		}
		known := index[b.data.LanguageID]

		for _, rec := range b.data.Words {
			if err := rec.Validate(); err != nil {
				br.Rejected = append(br.Rejected, polydb.RejectedRecord{
					Word:   rec.Word,
					Reason: err.Error(),
				})
				continue
			}
			key := rec.NaturalKey()
			fp := wordFingerprint(rec.MeaningAlt, rec.Romanization,
				rec.Category, rec.ConceptID, rec.FrequencyRank, rec.Notes)
			if existing, ok := known[key]; ok {
				if existing == fp {
					br.SkippedDuplicate++
				} else {
					br.Conflicts++
				}
				continue
			}
			known[key] = fp
			plan.words = append(plan.words, schema.Word{
				UID:               bundle.RecordUID(b.data.LanguageID, key),
				LanguageID:        b.data.LanguageID,
				Word:              rec.Word,
				Meaning:           rec.Meaning,
				MeaningAlt:        rec.MeaningAlt,
				Romanization:      rec.Romanization,
				PronunciationHint: rec.PronunciationHint,
				Category:          rec.Category,
				FrequencyRank:     rec.FrequencyRank,
				ConceptID:         rec.ConceptID,
				Tone:              rec.Tone,
				CEFR:              bundle.DecodeCEFR(rec.Notes),
				Notes:             rec.Notes,
			})
			br.Inserted++
		}
		report.Bundles = append(report.Bundles, br)
	}
	return plan
}

// applyPlan performs all insertions for the version bump and advances
// the version marker. Runs inside one transaction: either the whole
// version lands or nothing does.
func (p *importer) applyPlan(
	tx *gorm.DB,
	pack *packData,
	plan *importPlan,
	report *polydb.ImportReport,
) error {
	n, err := insertLanguages(tx, pack.languages)
	if err != nil {
		return err
	}
	report.Languages = n

	n, err = insertConcepts(tx, pack.concepts)
	if err != nil {
		return err
	}
	report.Concepts = n

	if len(plan.words) > 0 {
		bar := pb.Full.Start(len(plan.words))
		bar.Set("prefix", "Importing words: ")
		bar.Set(pb.CleanOnFinish, true)

		batch := p.cfg.Database.BatchSize
		for i := 0; i < len(plan.words); i += batch {
			end := min(i+batch, len(plan.words))
			if err := tx.Create(plan.words[i:end]).Error; err != nil {
				bar.Finish()
				return WordInsertError(err)
			}
			bar.Add(end - i)
		}
		bar.Finish()
	}
	report.Words = len(plan.words)

	return iostore.SetSetting(tx, schema.ContentVersionKey,
		pack.manifest.Version)
}

// insertLanguages inserts reference languages the store has not seen.
// Existing rows are immutable and left untouched.
func insertLanguages(tx *gorm.DB, recs []bundle.LanguageRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	var existing []string
	if err := tx.Model(&schema.Language{}).Pluck("id", &existing).Error; err != nil {
		return 0, fmt.Errorf("failed to list languages: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	var rows []schema.Language
	for _, r := range recs {
		if known[r.ID] {
			continue
		}
		rows = append(rows, schema.Language{
			ID:             r.ID,
			Name:           r.Name,
			NativeName:     r.NativeName,
			Family:         r.Family,
			Subfamily:      r.Subfamily,
			Script:         r.Script,
			DifficultyTier: r.DifficultyTier,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := tx.Create(rows).Error; err != nil {
		return 0, fmt.Errorf("failed to insert languages: %w", err)
	}
	return len(rows), nil
}

// insertConcepts inserts reference concepts the store has not seen.
func insertConcepts(tx *gorm.DB, recs []bundle.ConceptRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	var existing []string
	if err := tx.Model(&schema.Concept{}).Pluck("id", &existing).Error; err != nil {
		return 0, fmt.Errorf("failed to list concepts: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	var rows []schema.Concept
	for _, r := range recs {
		if known[r.ID] {
			continue
		}
		rows = append(rows, schema.Concept{
			ID:            r.ID,
			Meaning:       r.Meaning,
			MeaningAlt:    r.MeaningAlt,
			Category:      r.Category,
			FrequencyRank: r.FrequencyRank,
			EtymologyNote: r.EtymologyNote,
			MnemonicHint:  r.MnemonicHint,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := tx.Create(rows).Error; err != nil {
		return 0, fmt.Errorf("failed to insert concepts: %w", err)
	}
	return len(rows), nil
}

// wordFingerprint folds the non-key payload fields into one
// comparable string, used to tell exact duplicates from conflicting
// re-definitions of the same natural key.
func wordFingerprint(
	meaningAlt, romanization, category, conceptID string,
	frequencyRank int,
	notes string,
) string {
	return strings.Join([]string{
		meaningAlt,
		romanization,
		category,
		conceptID,
		fmt.Sprintf("%d", frequencyRank),
		notes,
	}, "\x1f")
}
