// Package shell runs the interactive menu that drives the recipe manager.
// It reads numbered selections from standard input, re-prompting on invalid
// input, and persists state after every mutation.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ameal/cocina/internal/manager"
	"github.com/ameal/cocina/internal/model"
	"github.com/ameal/cocina/internal/simulator"
	"github.com/ameal/cocina/internal/storage"
)

// Shell is the interactive front end. All mutation of the manager happens
// here, on a single control flow.
type Shell struct {
	mgr   *manager.Manager
	store *storage.Gateway
	sim   *simulator.Simulator
	out   Printer
	in    *bufio.Scanner
}

// New wires a Shell over the given collaborators. Input is read line by
// line from r.
func New(mgr *manager.Manager, store *storage.Gateway, sim *simulator.Simulator, out Printer, r io.Reader) *Shell {
	return &Shell{
		mgr:   mgr,
		store: store,
		sim:   sim,
		out:   out,
		in:    bufio.NewScanner(r),
	}
}

// Run drives the menu loop until the user exits, input ends, or ctx is
// canceled between iterations. A final save is attempted on every exit
// path.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			// Best-effort save on interrupt; the canceled context must not
			// abort the write itself.
			s.out.Println("")
			s.save(context.Background())
			return nil
		}

		choice, err := s.menu()
		if errors.Is(err, io.EOF) {
			s.save(ctx)
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			s.showRecipes()
			s.pressEnter()
		case "2":
			s.addRecipe(ctx)
		case "3":
			s.deleteRecipe(ctx)
		case "4":
			s.prepareRecipe()
		case "5":
			s.showShoppingList()
			s.pressEnter()
		case "6":
			s.manageShoppingList(ctx)
		case "7":
			s.save(ctx)
			s.out.Success("\nGoodbye!\n")
			return nil
		default:
			s.out.Error("\nInvalid option")
		}
	}
}

func (s *Shell) menu() (string, error) {
	s.out.Title("RECIPE MANAGER")
	s.out.Println("\n1. Show recipes")
	s.out.Println("2. Add recipe")
	s.out.Println("3. Delete recipe")
	s.out.Println("4. Prepare recipe")
	s.out.Println("5. Show shopping list")
	s.out.Println("6. Manage shopping list")
	s.out.Println("7. Exit")
	return s.prompt("\nSelect an option: ")
}

// prompt prints label and reads one trimmed line. Returns io.EOF when the
// input stream ends.
func (s *Shell) prompt(label string) (string, error) {
	s.out.Printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) pressEnter() {
	_, _ = s.prompt("\nPress Enter to continue...")
}

// save persists the current state. Failures are reported to the user and
// logged, never fatal.
func (s *Shell) save(ctx context.Context) {
	if err := s.store.Save(ctx, s.mgr.Recipes(), s.mgr.Items()); err != nil {
		log.Error().Err(err).Msg("saving data file")
		s.out.Error("Could not save data: " + err.Error())
		return
	}
	s.out.Success("Data saved")
}

// showRecipes prints all recipes grouped by category. Reports whether
// anything was printed.
func (s *Shell) showRecipes() bool {
	s.out.Title("RECIPES")
	if s.mgr.RecipeCount() == 0 {
		s.out.Println("No recipes yet")
		return false
	}

	grouped := s.mgr.ByCategory()
	for _, cat := range model.Categories() {
		recipes := grouped[cat]
		if len(recipes) == 0 {
			continue
		}
		s.out.Println("\n" + strings.ToUpper(cat.String()) + ":")
		for i, r := range recipes {
			s.out.Println(fmt.Sprintf("  %d. %s (%d min)", i+1, r.Name, r.PrepTime))
			s.out.Println("     Ingredients: " + strings.Join(r.Ingredients, ", "))
		}
	}
	return true
}

// listRecipesFlat prints recipes numbered in insertion order, the order
// used for numeric selection. Reports whether anything was printed.
func (s *Shell) listRecipesFlat() bool {
	recipes := s.mgr.Recipes()
	if len(recipes) == 0 {
		s.out.Println("No recipes yet")
		return false
	}
	s.out.Println("")
	for i, r := range recipes {
		s.out.Println(fmt.Sprintf("%d. %s [%s] (%d min)", i+1, r.Name, r.Category, r.PrepTime))
	}
	return true
}

func (s *Shell) addRecipe(ctx context.Context) {
	for {
		s.out.Title("ADD NEW RECIPE")

		name, err := s.prompt("Recipe name: ")
		if err != nil {
			return
		}
		if name == "" {
			s.out.Error("Name must not be empty")
			continue
		}

		cats := model.Categories()
		s.out.Println("\nCategories:")
		for i, cat := range cats {
			s.out.Println(fmt.Sprintf("%d. %s", i+1, cat))
		}
		sel, err := s.prompt("Select a category: ")
		if err != nil {
			return
		}
		idx, convErr := strconv.Atoi(sel)
		if convErr != nil || idx < 1 || idx > len(cats) {
			s.out.Error("Invalid option")
			continue
		}
		category := cats[idx-1]

		raw, err := s.prompt("\nIngredients (comma separated): ")
		if err != nil {
			return
		}
		ingredients := strings.Split(raw, ",")

		s.out.Println("\nPreparation steps (one per line, finish with 'done'):")
		var steps []string
		for {
			step, err := s.prompt("> ")
			if err != nil {
				return
			}
			if strings.EqualFold(step, "done") {
				break
			}
			if step != "" {
				steps = append(steps, step)
			}
		}

		prepRaw, err := s.prompt("\nPreparation time (minutes): ")
		if err != nil {
			return
		}
		prepTime, convErr := strconv.Atoi(prepRaw)
		if convErr != nil {
			s.out.Error("Enter a valid number greater than 0")
			continue
		}

		recipe, err := model.NewRecipe(name, category, ingredients, steps, prepTime)
		if err != nil {
			s.out.Error(err.Error())
			continue
		}

		s.mgr.Add(recipe)
		s.out.Success(fmt.Sprintf("Recipe %q added!", recipe.Name))
		s.save(ctx)
		return
	}
}

func (s *Shell) deleteRecipe(ctx context.Context) {
	for {
		if !s.listRecipesFlat() {
			return
		}

		sel, err := s.prompt("\nSelect a recipe to delete (0 to cancel): ")
		if err != nil {
			return
		}
		if sel == "0" {
			return
		}

		recipe, ok := s.recipeByIndex(sel)
		if !ok {
			s.out.Error("Invalid selection")
			continue
		}

		if err := s.mgr.Remove(recipe.Name); err != nil {
			s.out.Error("Recipe not found")
			continue
		}
		s.out.Success(fmt.Sprintf("Recipe %q deleted", recipe.Name))
		s.save(ctx)
		return
	}
}

func (s *Shell) prepareRecipe() {
	for {
		if !s.listRecipesFlat() {
			return
		}

		sel, err := s.prompt("\nSelect a recipe to prepare (0 to cancel): ")
		if err != nil {
			return
		}
		if sel == "0" {
			return
		}

		recipe, ok := s.recipeByIndex(sel)
		if !ok {
			s.out.Error("Invalid selection")
			continue
		}

		if err := s.sim.Cook(recipe.Name); err != nil {
			s.out.Error("Recipe not found!")
			continue
		}
		return
	}
}

// recipeByIndex resolves a 1-based selection against insertion order.
func (s *Shell) recipeByIndex(sel string) (model.Recipe, bool) {
	idx, err := strconv.Atoi(sel)
	recipes := s.mgr.Recipes()
	if err != nil || idx < 1 || idx > len(recipes) {
		return model.Recipe{}, false
	}
	return recipes[idx-1], true
}

// showShoppingList prints the list split into pending and purchased groups
// with continuous numbering. Reports whether anything was printed.
func (s *Shell) showShoppingList() bool {
	s.out.Title("SHOPPING LIST")
	if s.mgr.ItemCount() == 0 {
		s.out.Println("The shopping list is empty")
		return false
	}

	pending := s.mgr.PendingItems()
	purchased := s.mgr.PurchasedItems()

	if len(pending) > 0 {
		s.out.Println("\nPENDING:")
		for i, item := range pending {
			s.out.Println(fmt.Sprintf("  %d. %s", i+1, item.Name))
		}
	}

	if len(purchased) > 0 {
		s.out.Println("\nPURCHASED:")
		for i, item := range purchased {
			s.out.Println(fmt.Sprintf("  %d. %s (bought)", len(pending)+i+1, item.Name))
		}
	}
	return true
}

func (s *Shell) manageShoppingList(ctx context.Context) {
	for {
		if !s.showShoppingList() {
			return
		}

		s.out.Println("\n1. Mark as purchased")
		s.out.Println("2. Remove item")
		s.out.Println("3. Back")
		action, err := s.prompt("\nSelect: ")
		if err != nil {
			return
		}

		if action == "3" {
			return
		}
		if action != "1" && action != "2" {
			s.out.Error("Invalid option")
			continue
		}

		sel, err := s.prompt("\nItem number (0 to cancel): ")
		if err != nil {
			return
		}
		if sel == "0" {
			continue
		}

		item, ok := s.itemByIndex(sel)
		if !ok {
			s.out.Error("Invalid selection")
			continue
		}

		switch action {
		case "1":
			if err := s.mgr.MarkPurchased(item.Name); err != nil {
				s.out.Error("Item not found")
				continue
			}
			s.out.Success("Item marked as purchased!")
		case "2":
			if err := s.mgr.RemoveItem(item.Name); err != nil {
				s.out.Error("Item not found")
				continue
			}
			s.out.Success("Item removed from the list!")
		}
		s.save(ctx)
	}
}

// itemByIndex resolves a 1-based selection against the display order:
// pending items first, then purchased.
func (s *Shell) itemByIndex(sel string) (model.ShoppingItem, bool) {
	idx, err := strconv.Atoi(sel)
	if err != nil {
		return model.ShoppingItem{}, false
	}

	items := append(s.mgr.PendingItems(), s.mgr.PurchasedItems()...)
	if idx < 1 || idx > len(items) {
		return model.ShoppingItem{}, false
	}
	return items[idx-1], true
}
