package domain

import (
	"encoding/json"
	"strconv"
)

// EntryType is the kind of registry entry.
type EntryType string

// Entry types supported by the ICE registry.
const (
	TypePlasmid EntryType = "PLASMID"
	TypeStrain  EntryType = "STRAIN"
	TypePart    EntryType = "PART"
	TypeSeed    EntryType = "ARABIDOPSIS"
	TypeProtein EntryType = "PROTEIN"
)

// Well-known metadata keys the client reads or writes itself.
// The metadata map is otherwise schema-agnostic: server-assigned fields
// pass through untouched.
const (
	KeyID           = "id"
	KeyRecordID     = "recordId"
	KeyType         = "type"
	KeyName         = "name"
	KeyHasSequence  = "hasSequence"
	KeyCreator      = "creator"
	KeyCreatorEmail = "creatorEmail"
)

// Entry represents one registry record: a metadata map plus an optional
// sequence document. The dirty flag tracks whether the document has
// changed since the entry was last synchronized with the registry.
//
// Entry is a plain in-memory value object with no I/O side effects.
// It is not safe for concurrent use.
type Entry struct {
	metadata map[string]any
	doc      SequenceDocument
	docDirty bool
}

// NewEntry constructs an entry. Either typ or metadata must supply the
// entry's kind; when both are absent construction fails with
// ErrNoEntryType. A nil doc is valid (metadata-only entry). An entry
// carrying a document starts dirty, since the registry has never seen it.
func NewEntry(doc SequenceDocument, typ EntryType, metadata map[string]any) (*Entry, error) {
	if typ == "" && len(metadata) == 0 {
		return nil, ErrNoEntryType
	}

	if metadata == nil {
		metadata = map[string]any{KeyType: string(typ)}
	} else if _, ok := metadata[KeyType]; !ok && typ != "" {
		metadata[KeyType] = string(typ)
	}

	return &Entry{
		metadata: metadata,
		doc:      doc,
		docDirty: doc != nil,
	}, nil
}

// Number returns the numeric registry id. The second return is false for
// entries that have never been persisted. Ids arrive from JSON decoding
// in several numeric shapes; all are coerced.
func (e *Entry) Number() (int64, bool) {
	v, ok := e.metadata[KeyID]
	if !ok {
		return 0, false
	}
	return coerceInt64(v)
}

// PartNumber returns the prefixed display id derived from the numeric id,
// or false if the entry has no numeric id yet.
func (e *Entry) PartNumber(prefix string) (string, bool) {
	n, ok := e.Number()
	if !ok {
		return "", false
	}
	return FormatPartNumber(n, prefix), true
}

// RecordID returns the registry's opaque record identifier, or "" when
// the entry has not been persisted.
func (e *Entry) RecordID() string {
	s, _ := e.metadata[KeyRecordID].(string)
	return s
}

// Type returns the entry's kind.
func (e *Entry) Type() EntryType {
	s, _ := e.metadata[KeyType].(string)
	return EntryType(s)
}

// Name returns the entry's name, or "" when unset.
func (e *Entry) Name() string {
	s, _ := e.metadata[KeyName].(string)
	return s
}

// HasSequence reports whether the registry holds a sequence for this
// entry, per the last metadata refresh.
func (e *Entry) HasSequence() bool {
	b, _ := e.metadata[KeyHasSequence].(bool)
	return b
}

// Metadata returns the live metadata map.
func (e *Entry) Metadata() map[string]any {
	return e.metadata
}

// Document returns the entry's sequence document, or nil.
func (e *Entry) Document() SequenceDocument {
	return e.doc
}

// DocumentDirty reports whether the document differs from what the
// registry last confirmed.
func (e *Entry) DocumentDirty() bool {
	return e.docDirty
}

// SetValue sets a single metadata value.
func (e *Entry) SetValue(key string, value any) {
	e.metadata[key] = value
}

// SetValues merges values into the metadata map, overwriting existing keys.
func (e *Entry) SetValues(values map[string]any) {
	for k, v := range values {
		e.metadata[k] = v
	}
}

// SetDocument replaces the sequence document. Setting nil clears it.
// The dirty flag is raised whenever either the previous or the new
// document is present; replacing nothing with nothing is a no-op.
func (e *Entry) SetDocument(doc SequenceDocument) {
	if e.doc != nil || doc != nil {
		e.docDirty = true
	}
	e.doc = doc
}

// ClearDocumentDirty lowers the dirty flag. Only the registry client
// calls this, after a confirmed successful synchronization.
func (e *Entry) ClearDocumentDirty() {
	e.docDirty = false
}

// coerceInt64 normalizes the numeric shapes JSON decoding produces.
func coerceInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
