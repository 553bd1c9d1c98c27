package ioimport

import (
	"os"
	"path/filepath"

	"github.com/polyglothq/polydb/pkg/bundle"
	"github.com/polyglothq/polydb/pkg/config"
	"golang.org/x/sync/errgroup"
)

// packData is one fully-read content pack: the manifest, the decoded
// reference files, and one entry per word bundle file. Bundle-level
// parse failures are captured in the entry, not returned.
type packData struct {
	manifest  *bundle.Manifest
	languages []bundle.LanguageRecord
	concepts  []bundle.ConceptRecord
	bundles   []bundleFile
}

type bundleFile struct {
	file string
	data *bundle.Bundle
	err  error
}

// ManifestName is the pack's entry point inside the pack directory.
const ManifestName = "manifest.yaml"

// readPack loads and decodes the whole pack from the configured pack
// directory. The manifest and reference files are required to parse;
// malformed word bundles are recorded per file so the importer can
// report them without failing the run.
func readPack(cfg *config.Config) (*packData, error) {
	dir := cfg.Import.PackDir
	if dir == "" {
		return nil, NoPackDirError()
	}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, ManifestError(dir, err)
	}
	m, err := bundle.ParseManifest(raw)
	if err != nil {
		return nil, ManifestError(dir, err)
	}

	pack := &packData{manifest: m}

	if m.Languages != "" {
		raw, err := os.ReadFile(filepath.Join(dir, m.Languages))
		if err != nil {
			return nil, ReferenceFileError(m.Languages, err)
		}
		pack.languages, err = bundle.ParseLanguages(raw)
		if err != nil {
			return nil, ReferenceFileError(m.Languages, err)
		}
	}

	if m.Concepts != "" {
		raw, err := os.ReadFile(filepath.Join(dir, m.Concepts))
		if err != nil {
			return nil, ReferenceFileError(m.Concepts, err)
		}
		pack.concepts, err = bundle.ParseConcepts(raw)
		if err != nil {
			return nil, ReferenceFileError(m.Concepts, err)
		}
	}

	// Word bundles are independent files; read and decode them
	// concurrently. Each goroutine writes only its own slot.
	pack.bundles = make([]bundleFile, len(m.Words))
	var g errgroup.Group
	g.SetLimit(cfg.JobsNumber)
	for i, file := range m.Words {
		i, file := i, file
		g.Go(func() error {
			entry := bundleFile{file: file}
			raw, err := os.ReadFile(filepath.Join(dir, file))
			if err != nil {
				entry.err = err
			} else {
				entry.data, entry.err = bundle.ParseBundle(raw)
			}
			pack.bundles[i] = entry
			return nil
		})
	}
	// Errors are per-bundle; Wait only synchronizes.
	_ = g.Wait()

	return pack, nil
}
