// Package simulator walks through a recipe's preparation steps, pacing the
// output so the total prep time is spread evenly across steps.
package simulator

import (
	"fmt"
	"strings"
	"time"

	"github.com/ameal/cocina/internal/model"
)

// RecipeSource resolves recipe names. *manager.Manager satisfies it.
type RecipeSource interface {
	Get(name string) (model.Recipe, bool)
}

// Reporter receives the simulator's progress output.
type Reporter interface {
	Title(text string)
	Println(text string)
	Success(text string)
}

// Simulator paces a step-by-step walk-through of a recipe. Once started, a
// run always completes; there is no cancellation path.
type Simulator struct {
	recipes RecipeSource
	out     Reporter
	sleep   func(time.Duration)
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSleep replaces the pause function. Tests use it to record pauses
// instead of waiting them out.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Simulator) {
		s.sleep = sleep
	}
}

// New builds a Simulator over the given recipe source.
func New(recipes RecipeSource, out Reporter, opts ...Option) *Simulator {
	s := &Simulator{
		recipes: recipes,
		out:     out,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StepPause returns the pause before advancing past each step of a recipe
// with the given total prep time and step count: max(1, prepTime/steps).
// Integer division truncates, so the pauses may sum to less than the total
// prep time; that rounding is part of the established behavior.
func StepPause(prepTime, steps int) time.Duration {
	pause := prepTime / steps
	if pause < 1 {
		pause = 1
	}
	return time.Duration(pause) * time.Second
}

// Cook simulates preparing the named recipe, printing each step and pausing
// between them. Returns model.ErrNotFound without emitting any step when
// the name is unknown.
func (s *Simulator) Cook(name string) error {
	recipe, ok := s.recipes.Get(name)
	if !ok {
		return fmt.Errorf("recipe %q: %w", name, model.ErrNotFound)
	}

	s.out.Title("Preparing: " + recipe.Name)
	s.out.Println("\nIngredients needed: " + strings.Join(recipe.Ingredients, ", ") + "\n")

	pause := StepPause(recipe.PrepTime, len(recipe.Steps))
	for i, step := range recipe.Steps {
		s.out.Println(fmt.Sprintf("Step %d/%d: %s", i+1, len(recipe.Steps), step))
		s.sleep(pause)
	}

	s.out.Success(fmt.Sprintf("\n%s ready in %d minutes!", recipe.Name, recipe.PrepTime))
	return nil
}
