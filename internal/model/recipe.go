// Package model defines the core recipe and shopping-list types and their
// wire representation. The JSON field names and enum literals match the
// legacy data file format, so existing recetas.json files keep loading.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a recipe or shopping item name is unknown.
var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected field on user-supplied recipe data.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Category classifies a recipe by meal.
type Category int

const (
	Breakfast Category = iota
	Lunch
	Dinner
	Dessert
)

// categoryLabels are the persisted literals. The data file predates this
// program, so the Spanish display strings are the wire format.
var categoryLabels = map[Category]string{
	Breakfast: "Desayuno",
	Lunch:     "Almuerzo",
	Dinner:    "Cena",
	Dessert:   "Postre",
}

// Categories returns all categories in menu order.
func Categories() []Category {
	return []Category{Breakfast, Lunch, Dinner, Dessert}
}

func (c Category) String() string {
	switch c {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	case Dessert:
		return "Dessert"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Label returns the persisted literal for the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// ParseCategory maps a persisted literal back to its Category.
func ParseCategory(s string) (Category, error) {
	for cat, label := range categoryLabels {
		if label == s {
			return cat, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	label, ok := categoryLabels[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return json.Marshal(label)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	cat, err := ParseCategory(s)
	if err != nil {
		return err
	}

	*c = cat
	return nil
}

// PurchaseState tracks whether a shopping item has been bought.
type PurchaseState int

const (
	Pending PurchaseState = iota
	Purchased
)

// stateLabels are the persisted literals (legacy enum names).
var stateLabels = map[PurchaseState]string{
	Pending:   "PENDIENTE",
	Purchased: "COMPRADO",
}

func (s PurchaseState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Purchased:
		return "Purchased"
	}
	return fmt.Sprintf("PurchaseState(%d)", int(s))
}

func (s PurchaseState) MarshalJSON() ([]byte, error) {
	label, ok := stateLabels[s]
	if !ok {
		return nil, fmt.Errorf("unknown purchase state %d", int(s))
	}
	return json.Marshal(label)
}

func (s *PurchaseState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for state, label := range stateLabels {
		if label == raw {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown purchase state %q", raw)
}

// Recipe is a named set of ingredients with ordered preparation steps.
// Recipes are immutable once created; replacing one means adding a new
// recipe under the same name.
type Recipe struct {
	Name        string   `json:"nombre"`
	Category    Category `json:"categoria"`
	Ingredients []string `json:"ingredientes"`
	Steps       []string `json:"pasos"`
	PrepTime    int      `json:"tiempo_preparacion"` // minutes
}

// ShoppingItem is a single ingredient on the shopping list.
type ShoppingItem struct {
	Name  string        `json:"nombre"`
	State PurchaseState `json:"estado"`
}

// NewRecipe validates user input and builds a Recipe. Ingredients are
// trimmed and deduplicated preserving first-seen order; empty entries are
// dropped.
func NewRecipe(name string, cat Category, ingredients, steps []string, prepTime int) (Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Recipe{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if len(steps) == 0 {
		return Recipe{}, ValidationError{Field: "steps", Reason: "at least one step is required"}
	}

	if prepTime <= 0 {
		return Recipe{}, ValidationError{Field: "prep time", Reason: "must be a positive number of minutes"}
	}

	seen := make(map[string]struct{}, len(ingredients))
	distinct := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			continue
		}
		if _, ok := seen[ing]; ok {
			continue
		}
		seen[ing] = struct{}{}
		distinct = append(distinct, ing)
	}

	return Recipe{
		Name:        name,
		Category:    cat,
		Ingredients: distinct,
		Steps:       steps,
		PrepTime:    prepTime,
	}, nil
}

// Validate checks invariants on a recipe coming from the data file.
func (r Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(r.Steps) == 0 {
		return ValidationError{Field: "steps", Reason: "at least one step is required"}
	}
	if r.PrepTime <= 0 {
		return ValidationError{Field: "prep time", Reason: "must be a positive number of minutes"}
	}
	return nil
}
