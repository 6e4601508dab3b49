package driven

import "github.com/synbiotools/ice-cli/internal/core/domain"

// DocumentCodec decodes sequence documents fetched from the registry.
// Decoding happens in memory; no scratch files are involved.
type DocumentCodec interface {
	// Decode parses a serialized sequence document.
	Decode(data []byte) (domain.SequenceDocument, error)
}
