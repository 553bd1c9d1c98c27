// Package iovocab manages learner-authored vocabulary: custom words,
// CSV import, and keyword mnemonics. Custom entries shadow a row in
// the words table so the review scheduler can treat them like bundled
// content; they are never deduplicated against content packs.
package iovocab

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/polyglothq/polydb/internal/iostore"
	"github.com/polyglothq/polydb/pkg/config"
	"github.com/polyglothq/polydb/pkg/schema"
	"gorm.io/gorm"
)

// customNotePrefix links a shadow word row back to its custom entry.
const customNotePrefix = "custom:"

// Service manages custom vocabulary and mnemonics.
type Service struct {
	cfg *config.Config
	op  *iostore.Operator
}

// New creates a new Service.
func New(cfg *config.Config, op *iostore.Operator) *Service {
	return &Service{cfg: cfg, op: op}
}

// AddWord stores a custom word and its shadow row in the words table.
// Returns the custom word id.
func (s *Service) AddWord(
	ctx context.Context,
	cw schema.CustomWord,
) (uint, error) {
	if strings.TrimSpace(cw.Word) == "" ||
		strings.TrimSpace(cw.Meaning) == "" {
		return 0, fmt.Errorf("custom word needs word text and meaning")
	}
	if cw.Source == "" {
		cw.Source = "manual"
	}

	err := s.op.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&cw).Error; err != nil {
			return err
		}
		shadow := schema.Word{
			LanguageID:    cw.LanguageID,
			Word:          cw.Word,
			Meaning:       cw.Meaning,
			MeaningAlt:    cw.MeaningAlt,
			Romanization:  cw.Romanization,
			Category:      "custom",
			FrequencyRank: 9999,
			Notes:         fmt.Sprintf("%s%d", customNotePrefix, cw.ID),
		}
		return tx.Create(&shadow).Error
	})
	if err != nil {
		return 0, err
	}
	slog.Debug("Added custom word", "id", cw.ID, "language", cw.LanguageID)
	return cw.ID, nil
}

// DeleteWord removes a custom word and its shadow row. Reports
// whether the entry existed.
func (s *Service) DeleteWord(ctx context.Context, id uint) (bool, error) {
	found := true
	err := s.op.Transaction(ctx, func(tx *gorm.DB) error {
		var cw schema.CustomWord
		if err := tx.First(&cw, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				found = false
				return nil
			}
			return err
		}
		note := fmt.Sprintf("%s%d", customNotePrefix, id)
		if err := tx.Where("notes = ?", note).
			Delete(&schema.Word{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cw).Error
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// List returns custom words, newest first, optionally filtered by
// language ("" means all).
func (s *Service) List(
	ctx context.Context,
	languageID string,
) ([]schema.CustomWord, error) {
	db := s.op.DB().WithContext(ctx).Order("created_at DESC")
	if languageID != "" {
		db = db.Where("language_id = ?", languageID)
	}
	var rows []schema.CustomWord
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ImportCSV reads custom words from CSV lines of the form
// word,meaning[,meaning_alt[,romanization[,tags]]]. Returns the
// number of imported rows; rows without word or meaning are skipped.
func (s *Service) ImportCSV(
	ctx context.Context,
	r io.Reader,
	languageID string,
) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	imported := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("malformed CSV: %w", err)
		}
		if len(rec) < 2 {
			continue
		}
		cw := schema.CustomWord{
			LanguageID: languageID,
			Word:       strings.TrimSpace(rec[0]),
			Meaning:    strings.TrimSpace(rec[1]),
			Source:     "csv",
			CreatedAt:  time.Now(),
		}
		if len(rec) > 2 {
			cw.MeaningAlt = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			cw.Romanization = strings.TrimSpace(rec[3])
		}
		if len(rec) > 4 {
			cw.Tags = strings.TrimSpace(rec[4])
		}
		if cw.Word == "" || cw.Meaning == "" {
			continue
		}
		if _, err := s.AddWord(ctx, cw); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

// SetMnemonic stores the learner's memory hook for a word; the
// uniqueness constraint keeps one mnemonic per word, so setting again
// replaces the previous one.
func (s *Service) SetMnemonic(
	ctx context.Context,
	wordID uint,
	keyword, mnemonic string,
) error {
	return s.op.Transaction(ctx, func(tx *gorm.DB) error {
		var row schema.KeywordMnemonic
		err := tx.Where("word_id = ?", wordID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = schema.KeywordMnemonic{WordID: wordID}
		} else if err != nil {
			return err
		}
		row.Keyword = keyword
		row.Mnemonic = mnemonic
		return tx.Save(&row).Error
	})
}

// Mnemonic returns the word's memory hook, if any.
func (s *Service) Mnemonic(
	ctx context.Context,
	wordID uint,
) (*schema.KeywordMnemonic, error) {
	var row schema.KeywordMnemonic
	err := s.op.DB().WithContext(ctx).
		Where("word_id = ?", wordID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SearchWords returns words whose text, meanings or romanization
// contain the query, ordered by frequency rank.
func (s *Service) SearchWords(
	ctx context.Context,
	query string,
	limit int,
) ([]schema.Word, error) {
	q := "%" + strings.TrimSpace(query) + "%"
	if limit <= 0 {
		limit = 100
	}
	var rows []schema.Word
	err := s.op.DB().WithContext(ctx).
		Where("word LIKE ? OR meaning LIKE ? OR meaning_alt LIKE ? "+
			"OR romanization LIKE ? OR concept_id LIKE ?",
			q, q, q, q, q).
		Order("frequency_rank ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
