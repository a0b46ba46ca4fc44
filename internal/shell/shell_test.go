package shell

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameal/cocina/internal/manager"
	"github.com/ameal/cocina/internal/model"
	"github.com/ameal/cocina/internal/simulator"
	"github.com/ameal/cocina/internal/storage"
)

// newTestShell wires a Shell over a temp data file and scripted input.
// Input lines are joined with newlines, as a user would type them.
func newTestShell(t *testing.T, mgr *manager.Manager, lines ...string) (*Shell, *bytes.Buffer, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "recetas.json")
	gateway := storage.NewGateway(path)
	t.Cleanup(gateway.Close)

	var out bytes.Buffer
	printer := NewPrinter(&out, true)
	sim := simulator.New(mgr, printer, simulator.WithSleep(func(time.Duration) {}))

	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return New(mgr, gateway, sim, printer, in), &out, path
}

func TestRunAddRecipeAndExit(t *testing.T) {
	mgr := manager.New()
	sh, out, path := newTestShell(t, mgr,
		"2",             // add recipe
		"Pasta",         // name
		"3",             // Dinner
		"pasta, tomato", // ingredients
		"boil", "mix", "done",
		"20", // prep time
		"7",  // exit
	)

	require.NoError(t, sh.Run(context.Background()))

	got, ok := mgr.Get("Pasta")
	require.True(t, ok)
	assert.Equal(t, model.Dinner, got.Category)
	assert.Equal(t, []string{"pasta", "tomato"}, got.Ingredients)
	assert.Equal(t, []string{"boil", "mix"}, got.Steps)
	assert.Equal(t, 20, got.PrepTime)
	assert.Empty(t, mgr.MissingIngredients())

	assert.Contains(t, out.String(), `Recipe "Pasta" added!`)

	// Every mutation persists; the exit save rewrites the same state.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Pasta"`)
	assert.Contains(t, string(data), `"PENDIENTE"`)
}

func TestRunInvalidMenuChoiceReprompts(t *testing.T) {
	sh, out, _ := newTestShell(t, manager.New(), "9", "7")

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid option")
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestRunAddRecipeRepromptsOnBadCategory(t *testing.T) {
	mgr := manager.New()
	sh, out, _ := newTestShell(t, mgr,
		"2",
		"Toast",
		"8", // out of range, restarts the add flow
		"Toast",
		"1", // Breakfast
		"bread",
		"toast it", "done",
		"5",
		"7",
	)

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid option")

	got, ok := mgr.Get("Toast")
	require.True(t, ok)
	assert.Equal(t, model.Breakfast, got.Category)
}

func TestRunDeleteRecipeKeepsPurchasedState(t *testing.T) {
	mgr := manager.New()
	mgr.Add(model.Recipe{
		Name: "Pasta", Category: model.Dinner,
		Ingredients: []string{"pasta", "tomato"},
		Steps:       []string{"cook"}, PrepTime: 10,
	})
	mgr.Add(model.Recipe{
		Name: "Salad", Category: model.Lunch,
		Ingredients: []string{"tomato", "lettuce"},
		Steps:       []string{"chop"}, PrepTime: 5,
	})
	require.NoError(t, mgr.MarkPurchased("tomato"))

	sh, out, _ := newTestShell(t, mgr,
		"3", // delete recipe
		"1", // Pasta (insertion order)
		"7",
	)

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), `Recipe "Pasta" deleted`)

	// tomato is still referenced by Salad and must keep its state;
	// pasta lost its last reference and is gone.
	names := func(items []model.ShoppingItem) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.Name)
		}
		return out
	}
	assert.Equal(t, []string{"tomato"}, names(mgr.PurchasedItems()))
	assert.Equal(t, []string{"lettuce"}, names(mgr.PendingItems()))
}

func TestRunDeleteOutOfRangeReprompts(t *testing.T) {
	mgr := manager.New()
	mgr.Add(model.Recipe{
		Name: "Pasta", Category: model.Dinner,
		Ingredients: []string{"pasta"},
		Steps:       []string{"cook"}, PrepTime: 10,
	})

	sh, out, _ := newTestShell(t, mgr,
		"3",
		"99", // out of range, re-prompts
		"0",  // cancel
		"7",
	)

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Invalid selection")
	assert.Equal(t, 1, mgr.RecipeCount())
}

func TestRunPrepareRecipe(t *testing.T) {
	mgr := manager.New()
	mgr.Add(model.Recipe{
		Name: "Soup", Category: model.Dinner,
		Ingredients: []string{"water"},
		Steps:       []string{"boil", "season"}, PrepTime: 8,
	})

	sh, out, _ := newTestShell(t, mgr,
		"4", // prepare
		"1", // Soup
		"7",
	)

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Preparing: Soup")
	assert.Contains(t, out.String(), "Step 2/2: season")
	assert.Contains(t, out.String(), "ready in 8 minutes")
}

func TestRunManageShoppingList(t *testing.T) {
	mgr := manager.New()
	mgr.Add(model.Recipe{
		Name: "Pasta", Category: model.Dinner,
		Ingredients: []string{"pasta", "tomato"},
		Steps:       []string{"cook"}, PrepTime: 10,
	})

	sh, out, path := newTestShell(t, mgr,
		"6", // manage shopping list
		"1", // mark as purchased
		"1", // pasta
		"2", // remove item
		"2", // pasta again: it now sits after the pending group
		"3", // back
		"7",
	)

	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "Item marked as purchased!")
	assert.Contains(t, out.String(), "Item removed from the list!")

	assert.Equal(t, 1, mgr.ItemCount())
	items := mgr.Items()
	assert.Equal(t, "tomato", items[0].Name)
	assert.Equal(t, model.Pending, items[0].State)

	// Only tomato is left on the persisted list, still pending.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"COMPRADO"`)
	assert.Contains(t, string(data), `"tomato"`)
}

func TestRunEOFSavesAndExits(t *testing.T) {
	mgr := manager.New()
	mgr.Add(model.Recipe{
		Name: "Flan", Category: model.Dessert,
		Ingredients: []string{"eggs"},
		Steps:       []string{"bake"}, PrepTime: 60,
	})

	path := filepath.Join(t.TempDir(), "recetas.json")
	gateway := storage.NewGateway(path)
	t.Cleanup(gateway.Close)

	var out bytes.Buffer
	printer := NewPrinter(&out, true)
	sim := simulator.New(mgr, printer, simulator.WithSleep(func(time.Duration) {}))
	sh := New(mgr, gateway, sim, printer, strings.NewReader(""))

	require.NoError(t, sh.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Flan"`)
}

func TestRunCanceledContextSavesAndExits(t *testing.T) {
	mgr := manager.New()
	sh, _, path := newTestShell(t, mgr, "7")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, sh.Run(ctx))
	_, err := os.Stat(path)
	assert.NoError(t, err, "interrupt path must still attempt a save")
}
