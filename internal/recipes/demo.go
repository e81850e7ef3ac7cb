package recipes

import "context"

var demoSummaries = []Summary{
	{ID: 1, Title: "Crispy Air Fryer Chicken", Image: "https://spoonacular.com/recipeImages/716429-312x231.jpg"},
	{ID: 2, Title: "Air Fryer Salmon", Image: "https://spoonacular.com/recipeImages/644387-312x231.jpg"},
	{ID: 3, Title: "Vegetable Skewers", Image: "https://spoonacular.com/recipeImages/639939-312x231.jpg"},
	{ID: 4, Title: "Air Fryer Steak", Image: "https://spoonacular.com/recipeImages/636759-312x231.jpg"},
	{ID: 5, Title: "Sweet Potato Fries", Image: "https://spoonacular.com/recipeImages/633547-312x231.jpg"},
}

var demoDetail = Detail{
	Title:   "Air Fryer Chicken Breast",
	Image:   "https://spoonacular.com/recipeImages/716429-556x370.jpg",
	Summary: "Perfectly crispy air fryer chicken breast with minimal oil. Ready in just 20 minutes!",
	Ingredients: []string{
		"2 boneless, skinless chicken breasts",
		"1 tablespoon olive oil",
		"1 teaspoon garlic powder",
		"1 teaspoon paprika",
		"Salt and pepper to taste",
	},
	Instructions: "1. Preheat air fryer to 375°F (190°C).\n" +
		"2. Pat chicken dry and brush with olive oil.\n" +
		"3. Season with garlic powder, paprika, salt, and pepper.\n" +
		"4. Cook for 10 minutes, flip, and cook another 6-8 minutes until internal temp reaches 165°F.",
}

// Demo serves a fixed dataset and never touches the network.
// Filters are ignored; only Number is honoured.
type Demo struct{}

// Search returns the first Number demo recipes.
func (Demo) Search(_ context.Context, params SearchParams) []Summary {
	n := params.number()
	if n > len(demoSummaries) {
		n = len(demoSummaries)
	}
	out := make([]Summary, n)
	copy(out, demoSummaries[:n])
	return out
}

// Detail returns the demo recipe for any id.
func (Demo) Detail(context.Context, int64) (Detail, bool) {
	d := demoDetail
	d.Ingredients = append([]string(nil), demoDetail.Ingredients...)
	return d, true
}
