package domain

// Chunk is one labeled, independently retrievable unit of a brand manual.
// Section is a dotted path ("tone.dos", "visual.logo_rules") used for
// priority lookup at rerank time.
type Chunk struct {
	Section  string            `json:"section"`
	Text     string            `json:"chunk_text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EmbeddedChunk ties a chunk to its owning manual and its vector. Created
// once per manual version, immutable thereafter.
type EmbeddedChunk struct {
	ManualID string    `json:"manual_id"`
	Chunk    Chunk     `json:"chunk"`
	Vector   []float32 `json:"-"`
}

// RetrievedChunk is a chunk decorated with its similarity score for one
// query, in [0, 1] with higher meaning more similar.
type RetrievedChunk struct {
	ManualID   string  `json:"manual_id"`
	Section    string  `json:"section"`
	Text       string  `json:"chunk_text"`
	Similarity float64 `json:"similarity"`
}
