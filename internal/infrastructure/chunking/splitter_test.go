package chunking

import (
	"strings"
	"testing"
)

func TestSplitOverlapsConsecutiveChunks(t *testing.T) {
	s := NewSplitter(10, 4)
	chunks := s.Split("abcdefghijklmnopqrstuvwxyz")
	if len(chunks) < 3 {
		t.Fatalf("expected multiple chunks, got %v", chunks)
	}
	// Each chunk starts 6 runes after the previous one, so the last 4
	// runes repeat.
	if !strings.HasPrefix(chunks[1], chunks[0][6:]) {
		t.Fatalf("chunks do not overlap: %q then %q", chunks[0], chunks[1])
	}
}

func TestSplitEmptyInput(t *testing.T) {
	s := NewSplitter(100, 10)
	if chunks := s.Split("   "); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %v", chunks)
	}
}

func TestSplitterNormalizesBadConfig(t *testing.T) {
	s := NewSplitter(0, 5000)
	if s.ChunkSize != 900 {
		t.Fatalf("expected default chunk size, got %d", s.ChunkSize)
	}
	if s.Overlap >= s.ChunkSize {
		t.Fatalf("overlap must stay below chunk size: %d/%d", s.Overlap, s.ChunkSize)
	}
}

func TestExtractEntities(t *testing.T) {
	text := "As per the Right to Education Act, 2009 read with Section 12(1), " +
		"admission is mandated. See also G.O. Ms No 54 and section 12(1) again."
	entities := ExtractEntities(text)

	if len(entities.Acts) != 1 || !strings.Contains(entities.Acts[0], "Act") {
		t.Fatalf("acts not extracted: %v", entities.Acts)
	}
	if len(entities.Sections) != 1 {
		t.Fatalf("sections not deduped case-insensitively: %v", entities.Sections)
	}
	if len(entities.GONumbers) != 1 || !strings.Contains(entities.GONumbers[0], "54") {
		t.Fatalf("go numbers not extracted: %v", entities.GONumbers)
	}
}

func TestExtractEntitiesNoMatches(t *testing.T) {
	entities := ExtractEntities("plain narrative text with no citations")
	if entities.Acts != nil || entities.Sections != nil || entities.GONumbers != nil {
		t.Fatalf("expected empty entities, got %+v", entities)
	}
}
