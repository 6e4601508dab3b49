package sbol

import (
	"github.com/synbiotools/ice-cli/internal/core/domain"
	"github.com/synbiotools/ice-cli/internal/core/ports/driven"
)

// Ensure Codec implements the port.
var _ driven.DocumentCodec = Codec{}

// Codec adapts this package to the driven.DocumentCodec port.
type Codec struct{}

// Decode parses a serialized SBOL document.
func (Codec) Decode(data []byte) (domain.SequenceDocument, error) {
	return ParseBytes(data)
}
