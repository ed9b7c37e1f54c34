package mobgen

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a parsed map document. Top-level fields are kept as raw JSON so
// everything except the mobs table passes through into variants byte-for-byte.
type Document map[string]json.RawMessage

// LoadDocument reads and parses a base map document from disk.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read base document: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// ParseDocument parses a map document from JSON bytes.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ParseError, err)
	}

	return doc, nil
}

// Player returns the raw player record from the document's mobs table.
// The bytes are never re-encoded, so the player entry survives generation
// exactly as it appeared in the input.
func (d Document) Player() (json.RawMessage, error) {
	mobsRaw, ok := d["mobs"]
	if !ok {
		return nil, MissingPlayerError
	}

	var mobs map[string]json.RawMessage
	if err := json.Unmarshal(mobsRaw, &mobs); err != nil {
		return nil, fmt.Errorf("%w: mobs is not an object: %w", ParseError, err)
	}

	player, ok := mobs["player"]
	if !ok {
		return nil, MissingPlayerError
	}

	return player, nil
}

// Variant returns a shallow copy of the document with its mobs table replaced.
// Passthrough fields still reference the original raw bytes.
func (d Document) Variant(mobs map[string]any) map[string]any {
	variant := make(map[string]any, len(d))
	for key, raw := range d {
		variant[key] = raw
	}
	variant["mobs"] = mobs

	return variant
}
