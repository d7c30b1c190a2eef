package schema

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// Document wraps a raw schema payload together with its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument validates the inputs and wraps them in a Document. The payload
// is copied so later mutation of the caller's buffer cannot leak in.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}
	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a defensive copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Parse decodes the wrapped payload through the strict Parse entry point.
func (d Document) Parse() (Schema, error) {
	return Parse(d.raw)
}

// Loader fetches schema documents from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures the default loader implementation.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS lookups.
	FileSystem fs.FS
	// HTTPClient overrides the client used for URL sources.
	HTTPClient *http.Client
	// AllowHTTPFallback enables URL loading with a default client when no
	// HTTPClient is supplied.
	AllowHTTPFallback bool
	// RequestTimeout bounds URL fetches when the client has no timeout.
	RequestTimeout time.Duration
}
