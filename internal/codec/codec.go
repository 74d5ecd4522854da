// Package codec serializes crawl results for the cache: gzip-compressed
// JSON of each entity's raw lineage, so a cached crawl deserializes back
// into the exact same []entity.Entity it started from.
package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"

	"github.com/MacHu-GWU/docpack-confluence-go/internal/docerrors"
	"github.com/MacHu-GWU/docpack-confluence-go/internal/entity"
)

// rawEntity mirrors entity.Entity for JSON purposes; entity.Node already
// has json-friendly exported fields, so this is just the wrapper shape.
type rawEntity struct {
	Lineage []entity.Node `json:"lineage"`
}

// SerializeEntities gzip-compresses the JSON encoding of entities.
func SerializeEntities(entities []entity.Entity) ([]byte, error) {
	raw := make([]rawEntity, len(entities))
	for i, e := range entities {
		raw[i] = rawEntity{Lineage: e.Lineage}
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(gw).Encode(raw); err != nil {
		return nil, &docerrors.SerializationError{Op: "encode", Err: err}
	}
	if err := gw.Close(); err != nil {
		return nil, &docerrors.SerializationError{Op: "gzip close", Err: err}
	}
	return buf.Bytes(), nil
}

// DeserializeEntities reverses SerializeEntities.
func DeserializeEntities(data []byte) ([]entity.Entity, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, &docerrors.SerializationError{Op: "gzip open", Err: err}
	}
	defer gr.Close()

	decoded, err := io.ReadAll(gr)
	if err != nil {
		return nil, &docerrors.SerializationError{Op: "gzip read", Err: err}
	}

	var raw []rawEntity
	if err := json.Unmarshal(decoded, &raw); err != nil {
		return nil, &docerrors.SerializationError{Op: "decode", Err: err}
	}

	entities := make([]entity.Entity, len(raw))
	for i, r := range raw {
		entities[i] = entity.Entity{Lineage: r.Lineage}
	}
	return entities, nil
}
