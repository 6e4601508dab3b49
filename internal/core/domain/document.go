package domain

// SequenceDocument is an opaque handle to a structured sequence document
// (SBOL). The registry client only needs to serialize a document for
// upload and to read the linear sequence it encodes; everything else is
// the codec's business.
type SequenceDocument interface {
	// Bytes returns the serialized document.
	Bytes() ([]byte, error)

	// Sequence returns the linear nucleotide sequence encoded by the
	// document, lowercase.
	Sequence() string
}
