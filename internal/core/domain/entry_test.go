package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocument is a minimal SequenceDocument for entry tests.
type fakeDocument struct {
	seq string
}

func (d *fakeDocument) Bytes() ([]byte, error) { return []byte(d.seq), nil }
func (d *fakeDocument) Sequence() string       { return d.seq }

func TestNewEntry_RequiresTypeOrMetadata(t *testing.T) {
	_, err := NewEntry(nil, "", nil)
	assert.ErrorIs(t, err, ErrNoEntryType)

	_, err = NewEntry(nil, "", map[string]any{})
	assert.ErrorIs(t, err, ErrNoEntryType)

	entry, err := NewEntry(nil, TypePlasmid, nil)
	require.NoError(t, err)
	assert.Equal(t, TypePlasmid, entry.Type())

	entry, err = NewEntry(nil, "", map[string]any{KeyType: "STRAIN"})
	require.NoError(t, err)
	assert.Equal(t, TypeStrain, entry.Type())
}

func TestNewEntry_TypeDoesNotOverrideMetadata(t *testing.T) {
	entry, err := NewEntry(nil, TypePart, map[string]any{KeyType: "PLASMID"})
	require.NoError(t, err)
	assert.Equal(t, TypePlasmid, entry.Type())
}

func TestEntry_Number(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want int64
		ok   bool
	}{
		{name: "float64 from JSON decode", id: float64(123), want: 123, ok: true},
		{name: "int64", id: int64(42), want: 42, ok: true},
		{name: "int", id: 7, want: 7, ok: true},
		{name: "json.Number", id: json.Number("99"), want: 99, ok: true},
		{name: "digit string", id: "55", want: 55, ok: true},
		{name: "garbage string", id: "nope", ok: false},
		{name: "absent", id: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := map[string]any{KeyType: "PART"}
			if tt.id != nil {
				metadata[KeyID] = tt.id
			}
			entry, err := NewEntry(nil, "", metadata)
			require.NoError(t, err)

			got, ok := entry.Number()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEntry_PartNumber(t *testing.T) {
	entry, err := NewEntry(nil, TypePlasmid, nil)
	require.NoError(t, err)

	_, ok := entry.PartNumber("SBC")
	assert.False(t, ok, "unpersisted entry has no part number")

	entry.SetValue(KeyID, float64(123))
	got, ok := entry.PartNumber("SBC")
	require.True(t, ok)
	assert.Equal(t, "SBC000123", got)
}

func TestEntry_MetadataAccessors(t *testing.T) {
	entry, err := NewEntry(nil, "", map[string]any{
		KeyType:        "STRAIN",
		KeyName:        "MG1655",
		KeyRecordID:    "abc-def",
		KeyHasSequence: true,
		"customField":  "kept",
	})
	require.NoError(t, err)

	assert.Equal(t, TypeStrain, entry.Type())
	assert.Equal(t, "MG1655", entry.Name())
	assert.Equal(t, "abc-def", entry.RecordID())
	assert.True(t, entry.HasSequence())
	assert.Equal(t, "kept", entry.Metadata()["customField"])
}

func TestEntry_SetValues(t *testing.T) {
	entry, err := NewEntry(nil, TypePart, map[string]any{KeyName: "old"})
	require.NoError(t, err)

	entry.SetValues(map[string]any{
		KeyName: "new",
		KeyID:   float64(9),
	})

	assert.Equal(t, "new", entry.Name())
	n, ok := entry.Number()
	require.True(t, ok)
	assert.Equal(t, int64(9), n)
}

func TestEntry_DocumentDirtyInvariant(t *testing.T) {
	doc := &fakeDocument{seq: "atgc"}

	t.Run("construction with document starts dirty", func(t *testing.T) {
		entry, err := NewEntry(doc, TypePlasmid, nil)
		require.NoError(t, err)
		assert.True(t, entry.DocumentDirty())
	})

	t.Run("construction without document starts clean", func(t *testing.T) {
		entry, err := NewEntry(nil, TypePlasmid, nil)
		require.NoError(t, err)
		assert.False(t, entry.DocumentDirty())
	})

	t.Run("setting a document marks dirty", func(t *testing.T) {
		entry, err := NewEntry(nil, TypePlasmid, nil)
		require.NoError(t, err)

		entry.SetDocument(doc)
		assert.True(t, entry.DocumentDirty())
		assert.Equal(t, doc, entry.Document())
	})

	t.Run("clearing an existing document marks dirty", func(t *testing.T) {
		entry, err := NewEntry(doc, TypePlasmid, nil)
		require.NoError(t, err)
		entry.ClearDocumentDirty()

		entry.SetDocument(nil)
		assert.True(t, entry.DocumentDirty())
		assert.Nil(t, entry.Document())
	})

	t.Run("nil to nil stays clean", func(t *testing.T) {
		entry, err := NewEntry(nil, TypePlasmid, nil)
		require.NoError(t, err)

		entry.SetDocument(nil)
		assert.False(t, entry.DocumentDirty())
	})

	t.Run("clear dirty after sync", func(t *testing.T) {
		entry, err := NewEntry(doc, TypePlasmid, nil)
		require.NoError(t, err)

		entry.ClearDocumentDirty()
		assert.False(t, entry.DocumentDirty())
	})
}
