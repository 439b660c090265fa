package domain

// Document is one logical text unit loaded from the profile table,
// one rendered sheet per document.
type Document struct {
	Text   string
	Source string // table path the sheet came from
	Sheet  string // sheet name within the table
}

// Chunk is the unit of retrieval: a slice of a document with its
// provenance and, once indexed, its embedding vector.
type Chunk struct {
	Text   string
	Source string
	Sheet  string
	Seq    int // position of the chunk within its document
	Vector []float32
}

// ScoredChunk is a retrieved chunk with its similarity score in [0,1],
// higher is closer.
type ScoredChunk struct {
	Chunk
	Score float64
}
