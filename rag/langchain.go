package rag

import (
	"github.com/tmc/langchaingo/schema"

	"github.com/tsawler/tessera/model"
)

// SchemaDocuments converts chunks into langchaingo documents, one per
// chunk, with page and source carried in the metadata. The result feeds
// directly into langchaingo vector stores and retrievers:
//
//	docs := rag.SchemaDocuments(chunks)
//	_, err := store.AddDocuments(ctx, docs)
func SchemaDocuments(chunks []model.Chunk) []schema.Document {
	docs := make([]schema.Document, 0, len(chunks))
	for _, ch := range chunks {
		docs = append(docs, schema.Document{
			PageContent: ch.Content,
			Metadata: map[string]any{
				"page":   ch.Page,
				"source": ch.Source,
			},
		})
	}
	return docs
}
