package domain

// Chunk is a minimal addressable unit of retrievable text derived from one
// JSON subtree. Chunks are created fresh on every flatten pass, handed to the
// index and discarded; only their projection into the index persists.
type Chunk struct {
	// Path is a dot/bracket-qualified address into the source JSON
	// ("root" for a bare top-level scalar, "key.nested", "key[2]").
	Path string
	// Text is the human-readable rendering of the subtree.
	Text string
	// ID is unique within one upsert call.
	ID string
}

// RetrievedChunk is a chunk as returned by a similarity query.
type RetrievedChunk struct {
	ID   string
	Path string
	Text string
	// Score is the provider's similarity measure, normalized to roughly [0,1].
	Score float64
}
