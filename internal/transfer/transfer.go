// Package transfer reads and writes the export file: the persisted snapshot
// plus a small metadata wrapper.
package transfer

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/thenoetrevino/scope/internal/apperr"
	"github.com/thenoetrevino/scope/internal/store"
)

// Wrapper values written on export.
const (
	Version = "1.0"
	AppName = "Project Scope"
)

// Collections every import must carry as arrays.
var requiredArrays = []string{"projects", "tasks", "sprints", "risks", "minutes", "columns"}

// legacyAliases maps older collection names onto the current ones.
var legacyAliases = map[string]string{"meetingMinutes": "minutes"}

// Meta is the export wrapper.
type Meta struct {
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
	AppName    string    `json:"appName"`
}

// Document is the full export layout.
type Document struct {
	store.Snapshot
	Meta
}

// FileName returns the suggested export file name for a given day.
func FileName(now time.Time) string {
	return "project-scope-backup-" + now.UTC().Format("2006-01-02") + ".json"
}

// Export encodes snap with the metadata wrapper.
func Export(snap store.Snapshot, now time.Time) ([]byte, error) {
	doc := Document{
		Snapshot: snap,
		Meta: Meta{
			ExportDate: now.UTC().Truncate(time.Millisecond),
			Version:    Version,
			AppName:    AppName,
		},
	}
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// Validate checks the shape of an import file: a JSON object holding all six
// collections as arrays.
func Validate(data []byte) error {
	_, err := validate(data)
	return err
}

func validate(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := sonic.ConfigStd.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, apperr.Validation("file", "file does not contain valid Project Scope data")
	}
	for legacy, current := range legacyAliases {
		if _, ok := raw[current]; !ok {
			if v, ok := raw[legacy]; ok {
				raw[current] = v
			}
		}
	}
	for _, key := range requiredArrays {
		v, ok := raw[key]
		if !ok {
			return nil, apperr.Validation(key, "missing collection")
		}
		if _, isArray := v.([]any); !isArray {
			return nil, apperr.Validation(key, "collection must be an array")
		}
	}
	return raw, nil
}

// Import validates and decodes an export file.
func Import(data []byte) (store.Snapshot, Meta, error) {
	raw, err := validate(data)
	if err != nil {
		return store.Snapshot{}, Meta{}, err
	}

	// Re-encode after alias resolution so legacy files decode the same way.
	normalized, err := sonic.ConfigStd.Marshal(raw)
	if err != nil {
		return store.Snapshot{}, Meta{}, apperr.Wrap(apperr.KindValidation, err, "file could not be decoded")
	}

	doc := Document{Snapshot: store.EmptySnapshot()}
	if err := sonic.ConfigStd.Unmarshal(normalized, &doc); err != nil {
		return store.Snapshot{}, Meta{}, apperr.Wrap(apperr.KindValidation, err, "file could not be decoded")
	}
	return doc.Snapshot, doc.Meta, nil
}
