// Package query evaluates local predicates over enhanced artworks, e.g.
//
//	ratio > 1 && hasImage("large") && includes(title, "tulip")
//
// Predicates run after the artworks were fetched; they never reach the API.
package query

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Sternrassler/wadm-client/pkg/client"
)

// Predicate is a compiled artwork predicate.
type Predicate struct {
	program *vm.Program
	source  string
}

// Compile compiles a predicate expression. Variables are the artwork fields
// id, title, link, medium, dimensions, image, ratio, pricing and sizes.
func Compile(source string) (*Predicate, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("empty query expression")
	}

	program, err := expr.Compile(source, expr.Env(env(client.ArtworkPlus{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", source, err)
	}

	return &Predicate{program: program, source: source}, nil
}

// String returns the source expression.
func (p *Predicate) String() string {
	return p.source
}

// Match evaluates the predicate against one artwork.
func (p *Predicate) Match(a client.ArtworkPlus) (bool, error) {
	out, err := expr.Run(p.program, env(a))
	if err != nil {
		return false, fmt.Errorf("evaluate query on artwork %d: %w", a.ID, err)
	}
	return out.(bool), nil
}

// Filter returns the artworks matching p, in their original order. A nil
// predicate matches everything.
func (p *Predicate) Filter(artworks []client.ArtworkPlus) ([]client.ArtworkPlus, error) {
	if p == nil {
		return artworks, nil
	}
	out := make([]client.ArtworkPlus, 0, len(artworks))
	for _, a := range artworks {
		ok, err := p.Match(a)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func env(a client.ArtworkPlus) map[string]any {
	return map[string]any{
		"id":         a.ID,
		"title":      a.Title,
		"link":       a.Link,
		"medium":     a.Medium,
		"dimensions": a.Dimensions,
		"image":      a.Image,
		"ratio":      a.Ratio,
		"pricing":    a.Pricing,
		"sizes":      a.Images.Labels(),

		"hasImage": func(label string) bool {
			_, ok := a.Images.Get(label)
			return ok
		},
		"includes": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
	}
}
