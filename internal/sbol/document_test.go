package sbol

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sbol2Doc = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:sbol="http://sbols.org/v2#">
  <sbol:ComponentDefinition rdf:about="http://example.org/cd/promoter1">
    <sbol:displayId>promoter1</sbol:displayId>
    <sbol:sequence rdf:resource="http://example.org/seq/promoter1"/>
  </sbol:ComponentDefinition>
  <sbol:Sequence rdf:about="http://example.org/seq/promoter1">
    <sbol:displayId>promoter1_seq</sbol:displayId>
    <sbol:elements>ATGCatgcTTAA</sbol:elements>
    <sbol:encoding rdf:resource="http://www.chem.qmul.ac.uk/iubmb/misc/naseq.html"/>
  </sbol:Sequence>
</rdf:RDF>`

const sbol1Doc = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:s="http://sbols.org/v1#">
  <s:DnaComponent rdf:about="http://example.org/dc/gene1">
    <s:displayId>gene1</s:displayId>
    <s:dnaSequence>
      <s:DnaSequence rdf:about="http://example.org/ds/gene1">
        <s:nucleotides>gagtcaaaaa</s:nucleotides>
      </s:DnaSequence>
    </s:dnaSequence>
  </s:DnaComponent>
  <s:DnaComponent rdf:about="http://example.org/dc/gene2">
    <s:displayId>gene2</s:displayId>
  </s:DnaComponent>
</rdf:RDF>`

func TestParseBytes_SBOL2(t *testing.T) {
	doc, err := ParseBytes([]byte(sbol2Doc))
	require.NoError(t, err)

	assert.Equal(t, "atgcatgcttaa", doc.Sequence())
	assert.Equal(t, 1, doc.ComponentCount())
}

func TestParseBytes_SBOL1(t *testing.T) {
	doc, err := ParseBytes([]byte(sbol1Doc))
	require.NoError(t, err)

	assert.Equal(t, "gagtcaaaaa", doc.Sequence())
	assert.Equal(t, 2, doc.ComponentCount())
}

func TestParseBytes_Malformed(t *testing.T) {
	_, err := ParseBytes([]byte("<rdf:RDF><unclosed>"))
	assert.Error(t, err)
}

func TestParseBytes_DisplayIdTextIgnored(t *testing.T) {
	// Text outside a sequence element must not leak into the sequence.
	doc, err := ParseBytes([]byte(sbol2Doc))
	require.NoError(t, err)
	assert.NotContains(t, doc.Sequence(), "promoter")
}

func TestDocument_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.xml")

	doc, err := ParseBytes([]byte(sbol2Doc))
	require.NoError(t, err)
	require.NoError(t, doc.Write(path))

	reread, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Sequence(), reread.Sequence())
	assert.Equal(t, doc.ComponentCount(), reread.ComponentCount())

	// Serialization is byte-preserving.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(sbol2Doc), data)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}

func TestCodec_Decode(t *testing.T) {
	doc, err := Codec{}.Decode([]byte(sbol2Doc))
	require.NoError(t, err)

	assert.Equal(t, "atgcatgcttaa", doc.Sequence())

	data, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte(sbol2Doc), data)
}
