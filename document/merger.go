package document

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/sap-gg/concatdeep/merge"
)

// Document is a named input. The name selects the codec by extension.
type Document struct {
	Name    string
	Content io.Reader
}

// Merger decodes documents with the codec registered for their names and
// merges them with merge.ConcatDeep.
type Merger struct {
	registry *Registry
	opts     merge.Options
}

// NewMerger creates a Merger. A nil registry means DefaultRegistry.
func NewMerger(registry *Registry, opts merge.Options) *Merger {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Merger{
		registry: registry,
		opts:     opts,
	}
}

// Merge decodes every document and merges them in order. Nothing is merged
// unless all documents decode.
func (m *Merger) Merge(ctx context.Context, docs ...Document) (*merge.Collection, error) {
	collections := make([]*merge.Collection, 0, len(docs))
	for i, doc := range docs {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}

		codec, matched := m.registry.For(doc.Name)
		if !matched {
			log.Debug().
				Str("document", doc.Name).
				Str("codec", codec.Name()).
				Msg("no codec for extension, using fallback")
		}

		c, err := codec.Decode(ctx, doc.Content, m.opts)
		if err != nil {
			return nil, fmt.Errorf("document %d (%s): %w", i, doc.Name, err)
		}
		log.Debug().
			Str("document", doc.Name).
			Str("codec", codec.Name()).
			Int("entries", c.Len()).
			Msg("decoded document")
		collections = append(collections, c)
	}

	merged := merge.ConcatDeep(collections...)
	log.Debug().
		Int("documents", len(docs)).
		Int("entries", merged.Len()).
		Msg("merged documents")
	return merged, nil
}

// MergeTo merges docs and writes the result with out.
func (m *Merger) MergeTo(ctx context.Context, w io.Writer, out Codec, docs ...Document) error {
	merged, err := m.Merge(ctx, docs...)
	if err != nil {
		return err
	}
	if err := out.Encode(ctx, w, merged); err != nil {
		return err
	}
	log.Debug().Str("codec", out.Name()).Msg("encoded merged document")
	return nil
}
