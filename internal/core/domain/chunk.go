package domain

import "time"

// Vertical is a document category partition mapped to a distinct vector
// collection.
type Vertical string

const (
	VerticalLegal    Vertical = "legal"
	VerticalGO       Vertical = "go"
	VerticalJudicial Vertical = "judicial"
	VerticalData     Vertical = "data"
	VerticalSchemes  Vertical = "schemes"
)

// Verticals lists all known partitions in declaration order.
func Verticals() []Vertical {
	return []Vertical{VerticalLegal, VerticalGO, VerticalJudicial, VerticalData, VerticalSchemes}
}

func IsValidVertical(v Vertical) bool {
	switch v {
	case VerticalLegal, VerticalGO, VerticalJudicial, VerticalData, VerticalSchemes:
		return true
	}
	return false
}

// ChunkEntities holds structured references extracted from chunk text.
type ChunkEntities struct {
	Acts      []string `json:"acts,omitempty"`
	Sections  []string `json:"sections,omitempty"`
	GONumbers []string `json:"go_numbers,omitempty"`
}

// Chunk is the smallest retrievable unit of document text. Chunks are
// immutable once indexed and owned by the vector store.
type Chunk struct {
	ID         string        `json:"id"`
	DocumentID string        `json:"document_id"`
	Text       string        `json:"text"`
	Vertical   Vertical      `json:"vertical"`
	Entities   ChunkEntities `json:"entities,omitempty"`
	Year       int           `json:"year,omitempty"`
}

// Document is a registry record carrying citation metadata for a source
// document. The chunk payloads reference documents by id.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Vertical    Vertical  `json:"vertical"`
	DocType     string    `json:"doc_type,omitempty"`
	SourceLabel string    `json:"source_label,omitempty"`
	Year        int       `json:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
