package ice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/synbiotools/ice-cli/internal/core/domain"
	"github.com/synbiotools/ice-cli/internal/core/ports/driven"
	"github.com/synbiotools/ice-cli/internal/logger"
	"github.com/synbiotools/ice-cli/internal/sbol"
)

const (
	// SessionHeader carries the login token on authenticated requests.
	SessionHeader = "X-ICE-Authentication-SessionId"

	// DefaultPartPrefix is the part-number prefix used when the caller
	// does not configure one.
	DefaultPartPrefix = "SBC"
)

// Config holds the connection parameters for a registry.
type Config struct {
	// URL is the registry base URL. A trailing slash is stripped.
	URL string

	// Email and Password are the login credentials.
	Email    string
	Password string

	// PartPrefix is the part-number prefix (default "SBC").
	PartPrefix string

	// Timeout bounds each HTTP exchange. Zero means no timeout: a hung
	// exchange hangs the caller unless the context says otherwise.
	Timeout time.Duration
}

// Session is the identity issued by a successful login.
type Session struct {
	// Token authorizes subsequent requests via SessionHeader.
	Token string

	// Name is the account's display name, first and last joined.
	Name string

	// Email is the account's email address.
	Email string
}

// Client is a synchronous ICE registry client. It logs in at
// construction and reuses the session for every call; an expired session
// surfaces as an APIError, never a silent re-login.
//
// Client is not safe for concurrent use.
type Client struct {
	url      string
	email    string
	password string
	prefix   string

	transport driven.Transport
	codec     driven.DocumentCodec
	session   Session
}

// Connect creates a client and logs in immediately. There is no lazy
// connection: a Connect that returns nil error holds a live session.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	return ConnectWith(ctx, cfg, NewHTTPTransport(cfg.Timeout), sbol.Codec{})
}

// ConnectWith is Connect with explicit transport and codec, for callers
// that need to substitute either.
func ConnectWith(ctx context.Context, cfg Config, transport driven.Transport, codec driven.DocumentCodec) (*Client, error) {
	prefix := cfg.PartPrefix
	if prefix == "" {
		prefix = DefaultPartPrefix
	}

	c := &Client{
		url:       strings.TrimSuffix(cfg.URL, "/"),
		email:     cfg.Email,
		password:  cfg.Password,
		prefix:    prefix,
		transport: transport,
		codec:     codec,
	}

	session, err := c.Reconnect(ctx)
	if err != nil {
		return nil, err
	}
	c.ApplySession(session)

	return c, nil
}

// Reconnect re-runs the login sequence and returns the fresh session.
// It does not touch the client's stored session; callers wanting to
// refresh it apply the result via ApplySession, mirroring Connect.
//
// Login tries the primary token endpoint first and falls back exactly
// once to the pluralized endpoint on a transport-level failure. Both
// failing yields an AuthError, never a bare NetworkError.
func (c *Client) Reconnect(ctx context.Context) (Session, error) {
	session, primaryErr := c.login(ctx, "/accesstoken")
	if primaryErr == nil {
		return session, nil
	}

	if !IsNetwork(primaryErr) {
		return Session{}, &AuthError{Primary: primaryErr}
	}

	logger.Warn("primary token endpoint unreachable, trying fallback: %v", primaryErr)
	session, fallbackErr := c.login(ctx, "/accesstokens")
	if fallbackErr != nil {
		return Session{}, &AuthError{Primary: primaryErr, Fallback: fallbackErr}
	}
	return session, nil
}

// ApplySession installs a session obtained from Reconnect.
func (c *Client) ApplySession(session Session) {
	c.session = session
}

// Session returns the client's current session.
func (c *Client) Session() Session {
	return c.session
}

// PartPrefix returns the configured part-number prefix.
func (c *Client) PartPrefix() string {
	return c.prefix
}

// login posts credentials to one token endpoint.
func (c *Client) login(ctx context.Context, endpoint string) (Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return Session{}, fmt.Errorf("marshal credentials: %w", err)
	}

	data, err := c.transport.Post(ctx, c.url+"/rest"+endpoint, body, jsonHeaders(""))
	if err != nil {
		return Session{}, err
	}

	var resp struct {
		SessionID string `json:"sessionId"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return Session{}, fmt.Errorf("decode token response: %w", err)
	}
	if resp.SessionID == "" {
		return Session{}, fmt.Errorf("token response carried no session id")
	}

	return Session{
		Token: resp.SessionID,
		Name:  resp.FirstName + " " + resp.LastName,
		Email: resp.Email,
	}, nil
}

// Entry fetches one entry by numeric id or part number. When the
// registry reports an attached sequence, the SBOL document is fetched
// and decoded in memory alongside the metadata.
func (c *Client) Entry(ctx context.Context, id domain.EntryID) (*domain.Entry, error) {
	metadata, err := c.fetchMetadata(ctx, id)
	if err != nil {
		return nil, err
	}

	var doc domain.SequenceDocument
	if hasSeq, _ := metadata[domain.KeyHasSequence].(bool); hasSeq {
		doc, err = c.fetchDocument(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return domain.NewEntry(doc, "", metadata)
}

// SequenceDocument fetches only the sequence document of an entry.
// Entries without a sequence return ErrNoDocument.
func (c *Client) SequenceDocument(ctx context.Context, id domain.EntryID) (domain.SequenceDocument, error) {
	entry, err := c.Entry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.Document() == nil {
		return nil, domain.ErrNoDocument
	}
	return entry.Document(), nil
}

// Save synchronizes an entry with the registry and returns its numeric
// id as reported by the create/update response.
//
// Entries without a numeric id are created, others updated, with the
// session identity injected as creator when the caller set none. The
// entry's metadata is refreshed from the registry after the write and
// again after any sequence operation, so the entry always reflects
// authoritative server state (hasSequence in particular).
//
// A dirty document triggers delete-then-upload: any sequence the
// registry currently holds is removed first, then the local document, if
// present, is uploaded against the entry's record id. The dirty flag is
// cleared only after a successful upload; on failure it stays set and
// the metadata write is not rolled back, so a retry re-runs just the
// sequence portion.
func (c *Client) Save(ctx context.Context, entry *domain.Entry) (int64, error) {
	c.injectCreator(entry)

	body, err := json.Marshal(entry.Metadata())
	if err != nil {
		return 0, fmt.Errorf("marshal metadata: %w", err)
	}

	var data []byte
	if _, persisted := entry.Number(); !persisted {
		data, err = c.transport.Post(ctx, c.url+"/rest/parts", body, c.authHeaders())
	} else {
		var num string
		num, err = c.entryNumber(entry)
		if err != nil {
			return 0, err
		}
		data, err = c.transport.Put(ctx, c.url+"/rest/parts/"+num, body, c.authHeaders())
	}
	if err != nil {
		return 0, err
	}

	resp, err := decodeObject(data)
	if err != nil {
		return 0, err
	}
	savedID, ok := numberValue(resp[domain.KeyID])
	if !ok {
		return 0, fmt.Errorf("save response carried no entry id")
	}

	metadata, err := c.fetchMetadata(ctx, domain.NumberID(savedID))
	if err != nil {
		return 0, err
	}
	entry.SetValues(metadata)

	if entry.DocumentDirty() {
		if hasSeq, _ := metadata[domain.KeyHasSequence].(bool); hasSeq {
			if err := c.deleteSequence(ctx, savedID); err != nil {
				return 0, err
			}
		}

		if doc := entry.Document(); doc != nil {
			if err := c.uploadDocument(ctx, entry, doc); err != nil {
				return 0, err
			}
			entry.ClearDocumentDirty()
		}
	}

	// Second refresh picks up post-upload server state such as the
	// flipped hasSequence flag.
	metadata, err = c.fetchMetadata(ctx, domain.NumberID(savedID))
	if err != nil {
		return 0, err
	}
	entry.SetValues(metadata)

	return savedID, nil
}

// Blast runs a BLAST_N search and returns the raw decoded response.
func (c *Client) Blast(ctx context.Context, seq string) (map[string]any, error) {
	body, err := json.Marshal(map[string]any{
		"blastQuery": map[string]string{
			"blastProgram": "BLAST_N",
			"sequence":     strings.ToLower(seq),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal blast query: %w", err)
	}

	data, err := c.transport.Post(ctx, c.url+"/rest/search", body, c.authHeaders())
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// SearchBySequence returns the entries whose sequence exactly equals
// seq. Blast results are filtered to perfect alignments, then each
// candidate's document is fetched and its decoded sequence compared
// against the query, guarding against search false positives. Order
// follows the search response.
func (c *Client) SearchBySequence(ctx context.Context, seq string) ([]*domain.Entry, error) {
	resp, err := c.Blast(ctx, seq)
	if err != nil {
		return nil, err
	}

	results, _ := resp["results"].([]any)
	var entries []*domain.Entry

	for _, raw := range results {
		result, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		alignment, _ := result["alignment"].(string)
		if !strings.Contains(alignment, "100%") {
			continue
		}
		info, _ := result["entryInfo"].(map[string]any)
		id, ok := numberValue(info[domain.KeyID])
		if !ok {
			continue
		}

		entry, err := c.Entry(ctx, domain.NumberID(id))
		if err != nil {
			return nil, err
		}
		if doc := entry.Document(); doc != nil && doc.Sequence() == seq {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// RebuildIndex triggers the registry's asynchronous blast index rebuild
// and returns the raw decoded response, if any. The endpoint sits
// outside the /rest prefix.
func (c *Client) RebuildIndex(ctx context.Context) (map[string]any, error) {
	data, err := c.transport.Put(ctx, c.url+"/indexes/blast", nil, c.authHeaders())
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeObject(data)
}

// AddPermission grants a group read or write access to an entry and
// returns the raw decoded response. The endpoint sits outside the /rest
// prefix.
func (c *Client) AddPermission(ctx context.Context, id domain.EntryID, groupID int64, readOnly bool) (map[string]any, error) {
	num, err := id.Number(c.prefix)
	if err != nil {
		return nil, err
	}

	permType := "WRITE_ENTRY"
	if readOnly {
		permType = "READ_ENTRY"
	}

	body, err := json.Marshal(map[string]any{
		"type":      permType,
		"article":   "GROUP",
		"articleId": groupID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal permission: %w", err)
	}

	data, err := c.transport.Post(ctx, c.url+"/parts/"+num+"/permissions", body, c.authHeaders())
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// fetchMetadata retrieves an entry's metadata map.
func (c *Client) fetchMetadata(ctx context.Context, id domain.EntryID) (map[string]any, error) {
	num, err := id.Number(c.prefix)
	if err != nil {
		return nil, err
	}

	data, err := c.transport.Get(ctx, c.url+"/rest/parts/"+num, c.authHeaders())
	if err != nil {
		return nil, err
	}
	return decodeObject(data)
}

// fetchDocument retrieves and decodes an entry's SBOL document. The
// download endpoint authenticates via the sid query parameter rather
// than the session header.
func (c *Client) fetchDocument(ctx context.Context, id domain.EntryID) (domain.SequenceDocument, error) {
	num, err := id.Number(c.prefix)
	if err != nil {
		return nil, err
	}

	url := c.url + "/rest/file/" + num + "/sequence/sbol?sid=" + c.session.Token
	data, err := c.transport.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return c.codec.Decode(data)
}

// deleteSequence removes the sequence the registry holds for an entry.
func (c *Client) deleteSequence(ctx context.Context, number int64) error {
	url := fmt.Sprintf("%s/rest/parts/%d/sequence", c.url, number)
	_, err := c.transport.Delete(ctx, url, map[string]string{SessionHeader: c.session.Token})
	return err
}

// uploadDocument posts the serialized document against the entry's
// record id and type. The upload endpoint takes only the session header.
func (c *Client) uploadDocument(ctx context.Context, entry *domain.Entry, doc domain.SequenceDocument) error {
	recordID := entry.RecordID()
	if recordID == "" {
		return ErrNoRecordID
	}

	content, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("serialize document: %w", err)
	}

	_, err = c.transport.PostFile(
		ctx,
		c.url+"/rest/file/sequence",
		driven.FilePart{FieldName: "file", FileName: recordID + ".xml", Content: content},
		map[string]string{
			"entryType":     string(entry.Type()),
			"entryRecordId": recordID,
		},
		map[string]string{SessionHeader: c.session.Token},
	)
	return err
}

// injectCreator fills creator fields from the session identity when the
// caller left them unset.
func (c *Client) injectCreator(entry *domain.Entry) {
	metadata := entry.Metadata()
	if _, ok := metadata[domain.KeyCreator]; !ok {
		entry.SetValue(domain.KeyCreator, c.session.Name)
	}
	if _, ok := metadata[domain.KeyCreatorEmail]; !ok {
		entry.SetValue(domain.KeyCreatorEmail, c.session.Email)
	}
}

// entryNumber returns the decimal id string of a persisted entry.
func (c *Client) entryNumber(entry *domain.Entry) (string, error) {
	n, ok := entry.Number()
	if !ok {
		return "", fmt.Errorf("entry has no numeric id")
	}
	return domain.NumberID(n).Number(c.prefix)
}

// authHeaders returns the JSON headers plus the session header.
func (c *Client) authHeaders() map[string]string {
	return jsonHeaders(c.session.Token)
}

// jsonHeaders builds the standard request headers; token may be empty
// for pre-login calls.
func jsonHeaders(token string) map[string]string {
	h := map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/json",
	}
	if token != "" {
		h[SessionHeader] = token
	}
	return h
}

// decodeObject parses a JSON object response.
func decodeObject(data []byte) (map[string]any, error) {
	if len(data) == 0 {
		return nil, ErrEmptyResponse
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return obj, nil
}

// numberValue coerces the numeric shapes JSON decoding produces.
func numberValue(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
