package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/erazemk/polica/internal/model"
)

// Version is the persisted document schema version. There is no
// migration path: a stored document with a different version is an
// error.
const Version = 1

// Store is the document-store collaborator: it loads and saves the full
// inventory document as one blob. Implementations must replace the
// stored document atomically on Save.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

// Document is the wholesale persisted state.
type Document struct {
	Items      []model.Item     `json:"items"`
	Categories []model.Category `json:"categories"`
}

// envelope wraps the document with its schema version on disk.
type envelope struct {
	Version int      `json:"version"`
	Data    Document `json:"data"`
}

// encodeDocument serializes a document into its versioned envelope.
func encodeDocument(doc *Document) ([]byte, error) {
	env := envelope{Version: Version, Data: *doc}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// decodeDocument parses a versioned envelope. Decoding is strict: an
// unexpected field anywhere in the document is an error, with no
// partial recovery. An empty blob decodes to an empty document.
func decodeDocument(raw []byte) (*Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Document{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("unsupported document version %d (want %d)", env.Version, Version)
	}
	return &env.Data, nil
}
