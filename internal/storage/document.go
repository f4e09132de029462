package storage

import (
	"encoding/json"
	"fmt"

	"github.com/digital-byte-innovations/StackWise/internal/common"
	"github.com/digital-byte-innovations/StackWise/internal/model"
)

// DocumentVersion is the version tag written on every snapshot
// document. Version 0 documents (no tag at all, possibly with
// non-array collection fields) predate the tag and are still readable.
const DocumentVersion = 1

// document is the on-disk shape: the snapshot wrapped with a version
// tag, matching {"state": {...}, "version": N}.
type document struct {
	State   model.Snapshot `json:"state"`
	Version int            `json:"version"`
}

// looseDocument mirrors document but defers collection decoding so
// malformed fields can be coerced instead of failing the whole read.
type looseDocument struct {
	State   looseState `json:"state"`
	Version int        `json:"version"`
}

type looseState struct {
	Transactions json.RawMessage `json:"transactions"`
	Categories   json.RawMessage `json:"categories"`
}

func encodeDocument(snapshot *model.Snapshot) ([]byte, error) {
	doc := document{State: *snapshot, Version: DocumentVersion}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return raw, nil
}

// decodeDocument reads a snapshot document of any known version.
// Collection fields that are missing, null, or not arrays decode to
// empty slices; array elements that are not valid entries are dropped.
func decodeDocument(raw []byte) (*model.Snapshot, int, error) {
	var doc looseDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", common.ErrSnapshotCorrupted, err)
	}

	snapshot := &model.Snapshot{
		Transactions: decodeEntries[model.Transaction](doc.State.Transactions, "transaction"),
		Categories:   decodeEntries[model.Category](doc.State.Categories, "category"),
	}
	return snapshot, doc.Version, nil
}

// decodeEntries decodes a collection element by element so a single
// malformed entry costs only itself, not the whole snapshot.
func decodeEntries[T any](raw json.RawMessage, kind string) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		common.LogWarn("coercing non-array snapshot field to empty list", common.Fields{"kind": kind})
		return out
	}

	for i, element := range elements {
		var entry T
		if err := json.Unmarshal(element, &entry); err != nil {
			common.LogWarn("dropping malformed snapshot entry", common.Fields{
				"kind":  kind,
				"index": i,
				"error": err,
			})
			continue
		}
		out = append(out, entry)
	}
	return out
}
