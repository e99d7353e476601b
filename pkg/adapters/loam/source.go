// Package loam reads schema definitions from a Loam repository of Markdown documents.
//
// Each document declares one schema in its front matter under the `schema` key; the
// document body is used as the description when the definition has none:
//
//	---
//	schema:
//	  name: signup
//	  domains: [{name: Gender, values: [{code: M, label: Male}, {code: F, label: Female}]}]
//	  fields: [{name: name, type: text}, {name: gender, domain: Gender}]
//	---
//	Sign up
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/ports"
)

var (
	_ ports.SchemaSource = (*Source)(nil)
	_ ports.Watchable    = (*Source)(nil)
)

// Document is the front matter of a schema document.
type Document struct {
	Schema map[string]any `json:"schema" mapstructure:"schema"`
}

// Source implements ports.SchemaSource over a typed Loam repository.
type Source struct {
	Repo *loam.TypedRepository[Document]
}

// New wraps an existing repository.
func New(repo *loam.TypedRepository[Document]) *Source {
	return &Source{Repo: repo}
}

// Open initialises a read-only, strict Loam repository at dir.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as json.Number across Markdown and JSON documents.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[Document](repo)), nil
}

// Get decodes the definition stored in document id.
func (s *Source) Get(ctx context.Context, id string) (*dsl.Definition, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return decode(doc.ID, doc.Data, doc.Content)
}

// Definitions decodes every schema document, sorted by name. Documents without a
// schema key are skipped; two documents declaring the same name are an error.
func (s *Source) Definitions(ctx context.Context) ([]*dsl.Definition, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	defs := make([]*dsl.Definition, 0, len(docs))
	for _, entry := range docs {
		// List carries metadata only; the body comes from Get.
		doc, err := s.Repo.Get(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", entry.ID, err)
		}
		if len(doc.Data.Schema) == 0 {
			continue
		}
		def, err := decode(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		if existing, ok := seen[def.Name]; ok {
			return nil, fmt.Errorf("collision detected: schema '%s' is defined in both '%s' and '%s'", def.Name, existing, doc.ID)
		}
		seen[def.Name] = doc.ID
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

func decode(docID string, data Document, content string) (*dsl.Definition, error) {
	if len(data.Schema) == 0 {
		return nil, fmt.Errorf("document %s has no schema", docID)
	}
	def, err := dsl.Decode(data.Schema)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", docID, err)
	}
	if def.Name == "" {
		def.Name = trimExtension(docID)
	}
	if def.Description == "" {
		def.Description = strings.TrimSpace(content)
	}
	return def, nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}

// Watch reports the ID of every schema document that changes until ctx is done.
func (s *Source) Watch(ctx context.Context) (<-chan string, error) {
	events, err := s.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
