// SPDX-License-Identifier: MIT
package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// Export writes the current store as a snapshot document
func Export(w io.Writer, store Snapshotter, note string) error {
	data, err := store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot store: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Snapshot{
		ID:      "export",
		Note:    note,
		Version: FormatVersion,
		Data:    data,
	})
}

// Import restores a document produced by Export or a backup file. A bare
// object mapping keys to documents is accepted too.
func Import(r io.Reader, store Snapshotter) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read import: %w", err)
	}
	if !gjson.ValidBytes(raw) {
		return 0, fmt.Errorf("import is not valid JSON")
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return 0, fmt.Errorf("import must be a JSON object")
	}

	payload := doc
	if data := doc.Get("data"); data.IsObject() && doc.Get("version").Exists() {
		payload = data
	}

	snapshot := make(map[string]json.RawMessage)
	payload.ForEach(func(key, value gjson.Result) bool {
		snapshot[key.String()] = json.RawMessage(value.Raw)
		return true
	})

	if err := store.Restore(snapshot); err != nil {
		return 0, err
	}
	return len(snapshot), nil
}
