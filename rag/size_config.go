package rag

// SmallChunkerConfig returns a configuration tuned for precise retrieval:
// small chunks match queries tightly but carry less surrounding context.
// Suited to FAQ-style corpora and short documents.
func SmallChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:   400,
		OverlapSize: 100,
	}
}

// LargeChunkerConfig returns a configuration tuned for context-heavy
// retrieval: large chunks keep arguments and explanations intact at the
// cost of looser query matching. Suited to books, papers, and manuals.
func LargeChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:   1600,
		OverlapSize: 400,
	}
}

// NoOverlapChunkerConfig returns a configuration with overlap disabled.
// Each sentence appears in exactly one chunk, which halves index size when
// storage matters more than context continuity at chunk boundaries.
func NoOverlapChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:   DefaultChunkSize,
		OverlapSize: 0,
	}
}
