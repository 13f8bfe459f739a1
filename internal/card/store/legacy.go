package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/martinsdigital/tapcard/internal/card/domain"
)

// legacyImportedKey marks a completed import so it only ever runs once.
const legacyImportedKey = "legacy_counters_imported"

// ImportLegacyCounters migrates an old JSON counters document into the
// store. Two historical shapes exist: the nested form
// {"slug": {"counter": n}} and an older flat form {"counter": n} whose
// values belong to the default slug. The whole import runs in one
// transaction and is recorded in settings so restarts don't re-apply it.
//
// A malformed document is surfaced as an error; the caller decides to log
// and continue. The legacy data on disk is never modified or deleted.
func ImportLegacyCounters(ctx context.Context, s Store, path, defaultSlug string) (int, error) {
	if _, err := s.Settings().Get(ctx, legacyImportedKey); err == nil {
		return 0, nil // already imported
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read legacy counters %s: %w", path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, fmt.Errorf("parse legacy counters %s: %w", path, err)
	}

	imported := 0
	err = s.WithTx(ctx, func(tx Tx) error {
		for key, val := range doc {
			// Flat shape: counter names at the top level.
			if domain.KnownCounter(key) {
				var n int64
				if err := json.Unmarshal(val, &n); err != nil {
					return fmt.Errorf("legacy counter %q: %w", key, err)
				}
				if err := tx.Counters().Set(ctx, defaultSlug, key, n); err != nil {
					return err
				}
				imported++
				continue
			}

			// Nested shape: slug -> {counter: n}. Unknown counter names
			// inside a slug are skipped rather than failing the import.
			var set map[string]int64
			if err := json.Unmarshal(val, &set); err != nil {
				return fmt.Errorf("legacy slug %q: %w", key, err)
			}
			for name, n := range set {
				if !domain.KnownCounter(name) {
					continue
				}
				if err := tx.Counters().Set(ctx, key, name, n); err != nil {
					return err
				}
				imported++
			}
		}

		return tx.Settings().Set(ctx, legacyImportedKey, "1")
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}
