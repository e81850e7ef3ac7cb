package menu

import "github.com/m3rciful/recipebot/internal/recipes"

// Reply keyboard labels.
const (
	LabelSearch     = "🔍 Search Recipes"
	LabelRandom     = "📚 Random Recipes"
	LabelPopular    = "⭐ Popular"
	LabelVegetarian = "🥗 Vegetarian"
	LabelMeat       = "🥩 Meat"
	LabelQuick      = "⏱ Quick (<30min)"
	LabelHelp       = "❓ Help"
)

// Inline button labels.
const (
	ButtonPrevious    = "⬅️ Previous"
	ButtonNext        = "Next ➡️"
	ButtonMainMenu    = "🏠 Main Menu"
	ButtonBackRecipes = "⬅️ Back to Recipes"
)

// MainMenuRows is the layout of the persistent reply keyboard.
var MainMenuRows = [][]string{
	{LabelSearch, LabelRandom},
	{LabelPopular, LabelVegetarian},
	{LabelMeat, LabelQuick},
	{LabelHelp},
}

// Category is a preset search reachable from the reply keyboard.
type Category struct {
	Label string
	// Noun fills the "Fetching <noun> recipes..." placeholder.
	Noun   string
	Title  string
	Params recipes.SearchParams
}

// Categories lists the preset searches in menu order.
var Categories = []Category{
	{Label: LabelRandom, Noun: "random", Title: "Random Recipes"},
	{Label: LabelPopular, Noun: "popular", Title: "Popular Recipes", Params: recipes.SearchParams{Query: "popular"}},
	{Label: LabelVegetarian, Noun: "vegetarian", Title: "Vegetarian Recipes", Params: recipes.SearchParams{Diet: "vegetarian"}},
	{Label: LabelMeat, Noun: "meat", Title: "Meat Recipes", Params: recipes.SearchParams{Query: "meat"}},
	{Label: LabelQuick, Noun: "quick", Title: "Quick Recipes (<30min)", Params: recipes.SearchParams{MaxReadyTime: 30}},
}

// CategoryFor returns the category bound to a reply keyboard label.
func CategoryFor(label string) (Category, bool) {
	for _, c := range Categories {
		if c.Label == label {
			return c, true
		}
	}
	return Category{}, false
}
