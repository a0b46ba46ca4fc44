// Package storage persists the recipe store and shopping list to a single
// JSON file. All file I/O happens on a dedicated worker goroutine; callers
// block until their request completes, so saves never overlap.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ameal/cocina/internal/model"
)

// document is the on-disk shape. Field names and enum literals are fixed:
// data files written by earlier versions must keep round-tripping.
type document struct {
	Recipes      map[string]model.Recipe `json:"recetas"`
	ShoppingList []model.ShoppingItem    `json:"lista_compras"`
}

type job func()

// Gateway reads and writes the data file through its worker goroutine.
type Gateway struct {
	path string
	jobs chan job
	done chan struct{}
}

// NewGateway starts the worker for the given file path. Call Close when
// finished.
func NewGateway(path string) *Gateway {
	g := &Gateway{
		path: path,
		jobs: make(chan job),
		done: make(chan struct{}),
	}
	go g.worker()
	return g
}

func (g *Gateway) worker() {
	defer close(g.done)
	for j := range g.jobs {
		j()
	}
}

// Close stops the worker after any in-flight request finishes.
func (g *Gateway) Close() {
	close(g.jobs)
	<-g.done
}

// run hands fn to the worker and waits for it to finish. The context only
// bounds the wait for a free worker slot; a job that has started always
// runs to completion so the file is never left mid-write.
func (g *Gateway) run(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	select {
	case g.jobs <- func() { errc <- fn() }:
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-errc
}

// Save rewrites the entire data file from the given state.
func (g *Gateway) Save(ctx context.Context, recipes []model.Recipe, items []model.ShoppingItem) error {
	doc := document{
		Recipes:      make(map[string]model.Recipe, len(recipes)),
		ShoppingList: items,
	}
	if doc.ShoppingList == nil {
		doc.ShoppingList = []model.ShoppingItem{}
	}
	for _, r := range recipes {
		doc.Recipes[r.Name] = r
	}

	return g.run(ctx, func() error {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding data file: %w", err)
		}

		if err := os.WriteFile(g.path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", g.path, err)
		}

		log.Debug().Str("path", g.path).Int("recipes", len(recipes)).Int("items", len(items)).Msg("state saved")
		return nil
	})
}

// Load reads the data file back. A missing file yields empty state and no
// error; a file that cannot be read or decoded yields an error and the
// caller decides how to degrade.
func (g *Gateway) Load(ctx context.Context) ([]model.Recipe, []model.ShoppingItem, error) {
	var (
		recipes []model.Recipe
		items   []model.ShoppingItem
	)

	err := g.run(ctx, func() error {
		data, err := os.ReadFile(g.path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("reading %s: %w", g.path, err)
		}

		var doc document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", g.path, err)
		}

		names := make([]string, 0, len(doc.Recipes))
		for name := range doc.Recipes {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			r := doc.Recipes[name]
			if r.Name == "" {
				r.Name = name
			}
			if err := r.Validate(); err != nil {
				return fmt.Errorf("recipe %q in %s: %w", name, g.path, err)
			}
			recipes = append(recipes, r)
		}

		items = doc.ShoppingList
		log.Debug().Str("path", g.path).Int("recipes", len(recipes)).Int("items", len(items)).Msg("state loaded")
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return recipes, items, nil
}
