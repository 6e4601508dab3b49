package driven

import "context"

// FilePart describes the file portion of a multipart upload. Content is
// held in memory; the registry's sequence documents are small.
type FilePart struct {
	// FieldName is the multipart field name for the file.
	FieldName string

	// FileName is the name reported for the uploaded file.
	FileName string

	// Content is the file body.
	Content []byte
}

// Transport issues HTTP exchanges against the registry. Implementations
// distinguish transport-level failures (connection refused, DNS) from
// HTTP error statuses: the former surface as a NetworkError, the latter
// as an APIError carrying the status code.
//
// Every call blocks until the exchange completes. Cancellation and
// deadlines arrive via the context.
type Transport interface {
	// Get performs a GET and returns the response body.
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)

	// Post performs a POST with an optional JSON body.
	Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)

	// Put performs a PUT with an optional JSON body.
	Put(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)

	// Delete performs a DELETE.
	Delete(ctx context.Context, url string, headers map[string]string) ([]byte, error)

	// PostFile performs a multipart POST with a file part plus plain
	// form fields.
	PostFile(ctx context.Context, url string, file FilePart, fields map[string]string, headers map[string]string) ([]byte, error)
}
