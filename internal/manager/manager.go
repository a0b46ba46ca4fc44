// Package manager holds the in-memory recipe store and shopping list and
// keeps the two consistent: the shopping list always covers the union of
// ingredients across all current recipes.
package manager

import (
	"github.com/ameal/cocina/internal/model"
)

// Manager owns the recipe store and the derived shopping list. It is used
// from a single control flow (the interactive shell), so it carries no
// locking.
type Manager struct {
	recipes     map[string]model.Recipe
	recipeOrder []string // insertion order, drives numeric selection

	items     map[string]*model.ShoppingItem
	itemOrder []string
}

// New returns an empty Manager.
func New() *Manager {
	return &Manager{
		recipes: make(map[string]model.Recipe),
		items:   make(map[string]*model.ShoppingItem),
	}
}

// Add inserts the recipe, overwriting any recipe with the same name, and
// registers each ingredient not yet on the shopping list as Pending.
// Existing list entries keep their purchase state.
func (m *Manager) Add(r model.Recipe) {
	if _, ok := m.recipes[r.Name]; !ok {
		m.recipeOrder = append(m.recipeOrder, r.Name)
	}
	m.recipes[r.Name] = r

	for _, ing := range r.Ingredients {
		if _, ok := m.items[ing]; ok {
			continue
		}
		m.items[ing] = &model.ShoppingItem{Name: ing, State: model.Pending}
		m.itemOrder = append(m.itemOrder, ing)
	}
}

// Remove deletes the recipe by name and prunes shopping items no longer
// referenced by any remaining recipe. Items still referenced keep their
// purchase state. Returns model.ErrNotFound for an unknown name.
func (m *Manager) Remove(name string) error {
	if _, ok := m.recipes[name]; !ok {
		return model.ErrNotFound
	}

	delete(m.recipes, name)
	m.recipeOrder = deleteString(m.recipeOrder, name)

	union := m.ingredientUnion()
	kept := m.itemOrder[:0]
	for _, ing := range m.itemOrder {
		if _, ok := union[ing]; ok {
			kept = append(kept, ing)
			continue
		}
		delete(m.items, ing)
	}
	m.itemOrder = kept

	return nil
}

// Get looks up a recipe by name.
func (m *Manager) Get(name string) (model.Recipe, bool) {
	r, ok := m.recipes[name]
	return r, ok
}

// Recipes returns all recipes in insertion order.
func (m *Manager) Recipes() []model.Recipe {
	out := make([]model.Recipe, 0, len(m.recipeOrder))
	for _, name := range m.recipeOrder {
		out = append(out, m.recipes[name])
	}
	return out
}

// RecipeCount reports the number of stored recipes.
func (m *Manager) RecipeCount() int {
	return len(m.recipes)
}

// Filter returns the recipes satisfying pred, in insertion order.
func (m *Manager) Filter(pred func(model.Recipe) bool) []model.Recipe {
	var out []model.Recipe
	for _, name := range m.recipeOrder {
		if r := m.recipes[name]; pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByCategory groups recipes by category, insertion order within each group.
func (m *Manager) ByCategory() map[model.Category][]model.Recipe {
	out := make(map[model.Category][]model.Recipe)
	for _, name := range m.recipeOrder {
		r := m.recipes[name]
		out[r.Category] = append(out[r.Category], r)
	}
	return out
}

// MissingIngredients returns ingredients referenced by some recipe but
// absent from the shopping list. Add and Remove maintain the list, so this
// is a consistency check that normally yields nothing.
func (m *Manager) MissingIngredients() []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, name := range m.recipeOrder {
		for _, ing := range m.recipes[name].Ingredients {
			if _, dup := seen[ing]; dup {
				continue
			}
			seen[ing] = struct{}{}
			if _, ok := m.items[ing]; !ok {
				missing = append(missing, ing)
			}
		}
	}
	return missing
}

// MarkPurchased flips the named shopping item to Purchased.
func (m *Manager) MarkPurchased(name string) error {
	item, ok := m.items[name]
	if !ok {
		return model.ErrNotFound
	}
	item.State = model.Purchased
	return nil
}

// RemoveItem drops the named item from the shopping list. The item
// reappears as Pending only when a recipe referencing it is added again.
func (m *Manager) RemoveItem(name string) error {
	if _, ok := m.items[name]; !ok {
		return model.ErrNotFound
	}
	delete(m.items, name)
	m.itemOrder = deleteString(m.itemOrder, name)
	return nil
}

// Items returns the shopping list in insertion order.
func (m *Manager) Items() []model.ShoppingItem {
	out := make([]model.ShoppingItem, 0, len(m.itemOrder))
	for _, name := range m.itemOrder {
		out = append(out, *m.items[name])
	}
	return out
}

// ItemCount reports the number of shopping items.
func (m *Manager) ItemCount() int {
	return len(m.items)
}

// PendingItems returns items not yet purchased, in insertion order.
func (m *Manager) PendingItems() []model.ShoppingItem {
	return m.itemsInState(model.Pending)
}

// PurchasedItems returns purchased items, in insertion order.
func (m *Manager) PurchasedItems() []model.ShoppingItem {
	return m.itemsInState(model.Purchased)
}

func (m *Manager) itemsInState(state model.PurchaseState) []model.ShoppingItem {
	var out []model.ShoppingItem
	for _, name := range m.itemOrder {
		if item := m.items[name]; item.State == state {
			out = append(out, *item)
		}
	}
	return out
}

// Replace installs previously persisted state, discarding current contents.
// Order of the slices becomes the insertion order.
func (m *Manager) Replace(recipes []model.Recipe, items []model.ShoppingItem) {
	m.recipes = make(map[string]model.Recipe, len(recipes))
	m.recipeOrder = m.recipeOrder[:0]
	for _, r := range recipes {
		if _, ok := m.recipes[r.Name]; !ok {
			m.recipeOrder = append(m.recipeOrder, r.Name)
		}
		m.recipes[r.Name] = r
	}

	m.items = make(map[string]*model.ShoppingItem, len(items))
	m.itemOrder = m.itemOrder[:0]
	for _, item := range items {
		if _, ok := m.items[item.Name]; ok {
			continue
		}
		it := item
		m.items[item.Name] = &it
		m.itemOrder = append(m.itemOrder, item.Name)
	}
}

func (m *Manager) ingredientUnion() map[string]struct{} {
	union := make(map[string]struct{})
	for _, r := range m.recipes {
		for _, ing := range r.Ingredients {
			union[ing] = struct{}{}
		}
	}
	return union
}

func deleteString(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
