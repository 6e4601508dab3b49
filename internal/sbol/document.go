// Package sbol reads and writes SBOL sequence documents.
//
// The registry stores sequences as SBOL RDF/XML. This codec is
// deliberately shallow: it keeps the serialized document intact for
// round-tripping and extracts only what the client needs, the linear
// nucleotide sequence and the component count. It accepts both SBOL 1
// vocabulary (DnaComponent/DnaSequence/nucleotides) and SBOL 2
// (ComponentDefinition/Sequence/elements).
package sbol

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/synbiotools/ice-cli/internal/core/domain"
)

// Ensure Document satisfies the domain handle.
var _ domain.SequenceDocument = (*Document)(nil)

// Document is a parsed SBOL document. The original serialized form is
// retained byte-for-byte; Write and Bytes never re-serialize.
type Document struct {
	raw        []byte
	sequence   string
	components int
}

// Parse reads an SBOL document from a file.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sbol file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a serialized SBOL document.
func ParseBytes(data []byte) (*Document, error) {
	doc := &Document{raw: data}
	if err := doc.scan(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Write serializes the document to a file.
func (d *Document) Write(path string) error {
	if err := os.WriteFile(path, d.raw, 0600); err != nil {
		return fmt.Errorf("write sbol file: %w", err)
	}
	return nil
}

// Bytes returns the serialized document.
func (d *Document) Bytes() ([]byte, error) {
	return d.raw, nil
}

// Sequence returns the linear nucleotide sequence encoded by the
// document, lowercase. Documents holding several sequence records return
// them concatenated in document order.
func (d *Document) Sequence() string {
	return d.sequence
}

// ComponentCount returns the number of components in the document.
func (d *Document) ComponentCount() int {
	return d.components
}

// Element names carrying sequence data, by SBOL version.
var (
	sequenceHolders = map[string]bool{"DnaSequence": true, "Sequence": true}
	sequenceFields  = map[string]bool{"nucleotides": true, "elements": true}
	componentNames  = map[string]bool{"DnaComponent": true, "ComponentDefinition": true}
)

// scan walks the XML token stream once, collecting sequence text and
// counting components. Namespace prefixes vary between producers, so
// matching is on local names only.
func (d *Document) scan() error {
	dec := xml.NewDecoder(bytes.NewReader(d.raw))

	var seqs []string
	var inHolder, inField int

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse sbol document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case componentNames[t.Name.Local]:
				d.components++
			case sequenceHolders[t.Name.Local]:
				inHolder++
			case inHolder > 0 && sequenceFields[t.Name.Local]:
				inField++
			}
		case xml.EndElement:
			switch {
			case sequenceHolders[t.Name.Local]:
				inHolder--
			case inHolder > 0 && sequenceFields[t.Name.Local]:
				inField--
			}
		case xml.CharData:
			if inHolder > 0 && inField > 0 {
				seqs = append(seqs, strings.TrimSpace(string(t)))
			}
		}
	}

	d.sequence = strings.ToLower(strings.Join(seqs, ""))
	return nil
}
