// Package rag packs page-tagged sentences into size-bounded, overlapping
// chunks for RAG (Retrieval-Augmented Generation) pipelines, and exports
// them in formats vector stores and embedding services ingest.
//
// # Chunking
//
// The [Chunker] greedily packs consecutive sentences into chunks no longer
// than a character budget, then restarts each following chunk a few
// sentences back so that neighboring chunks share context:
//
//	chunker := rag.NewChunker()
//	chunks := chunker.Chunk(sentences)
//
// Chunks never cut a sentence in the middle. A sentence longer than the
// budget becomes a chunk by itself. All sizes are measured in runes, so CJK
// text is budgeted by characters rather than bytes.
//
// # Chunk Configuration
//
// Use [ChunkerConfig] to control packing behavior:
//
//   - ChunkSize - maximum characters per chunk
//   - OverlapSize - minimum characters shared with the preceding chunk
//   - Source - origin label stamped on every chunk
//
// [SmallChunkerConfig], [LargeChunkerConfig], and [NoOverlapChunkerConfig]
// provide presets for common retrieval setups.
//
// # Export
//
// The [Exporter] writes chunks as JSON Lines, JSON, or CSV:
//
//	exporter := rag.NewExporterWithConfig(rag.EmbeddingExportConfig())
//	err := exporter.Export(os.Stdout, chunks)
//
// [BatchExporter] splits large chunk sets into bounded batches for
// collaborators with ingestion limits, and [SchemaDocuments] converts
// chunks for LangChain-style document loaders.
package rag
