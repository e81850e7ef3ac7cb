package menu

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m3rciful/recipebot/internal/journal"
	"github.com/m3rciful/recipebot/internal/recipes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaries(n int) []recipes.Summary {
	out := make([]recipes.Summary, n)
	for i := range out {
		out[i] = recipes.Summary{ID: int64(i + 1), Title: fmt.Sprintf("Recipe %d", i+1)}
	}
	return out
}

func TestPaginateProperties(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for page := 0; page <= 6; page++ {
			w := Paginate(total, page)
			wantStart := page * PageSize
			if wantStart > total {
				wantStart = total
			}
			wantEnd := wantStart + PageSize
			if wantEnd > total {
				wantEnd = total
			}
			assert.Equal(t, wantStart, w.Start, "total=%d page=%d", total, page)
			assert.Equal(t, wantEnd, w.End, "total=%d page=%d", total, page)
			assert.Equal(t, page > 0, w.HasPrev)
			assert.Equal(t, page*PageSize+PageSize < total, w.HasNext)
			assert.LessOrEqual(t, w.End-w.Start, PageSize)
		}
	}
}

func TestPageFirstOfSeven(t *testing.T) {
	v := Page(summaries(7), 0, "Vegetarian Recipes")

	assert.Equal(t, "📋 *Vegetarian Recipes*\nShowing recipes 1-3 of 7:", v.Text)
	assert.True(t, v.Markdown)
	assert.False(t, v.MainMenu)
	require.Len(t, v.Inline, 5)
	assert.Equal(t, []Button{{Text: "Recipe 1", Data: "recipe_1"}}, v.Inline[0])
	assert.Equal(t, []Button{{Text: "Recipe 3", Data: "recipe_3"}}, v.Inline[2])
	assert.Equal(t, []Button{{Text: ButtonNext, Data: "page_1"}}, v.Inline[3])
	assert.Equal(t, []Button{{Text: ButtonMainMenu, Data: "main_menu"}}, v.Inline[4])
}

func TestPageLastPartial(t *testing.T) {
	v := Page(summaries(7), 2, DefaultPageTitle)

	assert.Equal(t, "📋 *Recipes*\nShowing recipes 7-7 of 7:", v.Text)
	require.Len(t, v.Inline, 3)
	assert.Equal(t, []Button{{Text: ButtonPrevious, Data: "page_1"}}, v.Inline[1])
}

func TestPageMiddleHasBothArrows(t *testing.T) {
	v := Page(summaries(9), 1, "Recipes")
	require.Len(t, v.Inline, 5)
	assert.Equal(t, []Button{
		{Text: ButtonPrevious, Data: "page_0"},
		{Text: ButtonNext, Data: "page_2"},
	}, v.Inline[3])
}

func TestPageExactlyThreeHasNoNavigation(t *testing.T) {
	v := Page(summaries(3), 0, "Recipes")
	require.Len(t, v.Inline, 4)
	assert.Equal(t, ButtonMainMenu, v.Inline[3][0].Text)
}

func TestPageEmptyAndBeyond(t *testing.T) {
	assert.Equal(t, WithMainMenu(NoResultsText), Page(nil, 0, "Recipes"))
	assert.Equal(t, WithMainMenu(NoMoreText), Page(summaries(5), 5, "Recipes"))
	assert.Equal(t, WithMainMenu(NoMoreText), Page(summaries(6), 2, "Recipes"))
}

func TestPageBoldTitleKeepsSpecials(t *testing.T) {
	v := Page(summaries(1), 0, SearchTitle("mac_and_cheese"))
	assert.True(t, strings.HasPrefix(v.Text, "📋 *Search Results: mac_and_cheese*\n"), v.Text)

	v = Page(summaries(1), 0, SearchTitle("chicken*wings"))
	assert.True(t, strings.HasPrefix(v.Text, "📋 *Search Results: chicken*\\**wings*\n"), v.Text)
}

func TestDetailBoldTitleKeepsSpecials(t *testing.T) {
	v := Detail(recipes.Detail{Title: "Air_Fryer Wings"})
	assert.True(t, strings.HasPrefix(v.Text, "🔥 *Air_Fryer Wings*\n\n"), v.Text)

	v = Detail(recipes.Detail{Title: "5*Star Fries"})
	assert.True(t, strings.HasPrefix(v.Text, "🔥 *5*\\**Star Fries*\n\n"), v.Text)
}

func TestHistory(t *testing.T) {
	assert.Equal(t, WithMainMenu(HistoryEmptyText), History(nil))

	v := History([]journal.Entry{
		{Source: journal.SourceSearch, Query: "mac_and_cheese", Results: 15},
		{Source: journal.SourceCategory, Diet: "vegetarian", Results: 5},
		{Source: journal.SourceCategory, MaxReadyTime: 30, Results: 4},
		{Source: journal.SourceCategory, Query: "popular", Results: 5},
		{Source: journal.SourceRecipes, Results: 5},
	})
	assert.True(t, v.Markdown)
	assert.True(t, v.MainMenu)
	assert.Equal(t, HistoryTitle+"\n"+
		"• \"mac\\_and\\_cheese\" (15 found)\n"+
		"• vegetarian (5 found)\n"+
		"• under 30 min (4 found)\n"+
		"• \"popular\" (5 found)\n"+
		"• random (5 found)", v.Text)
}

func TestDetailDemoRecipe(t *testing.T) {
	d, ok := recipes.Demo{}.Detail(context.Background(), 1)
	require.True(t, ok)

	v := Detail(d)
	assert.True(t, v.Markdown)
	assert.True(t, strings.HasPrefix(v.Text, "🔥 *Air Fryer Chicken Breast*\n\n📋 *Ingredients:*\n• 2 boneless, skinless chicken breasts\n"))
	assert.Contains(t, v.Text, "• Salt and pepper to taste\n\n📝 *Instructions:*\n1. Preheat air fryer to 375°F (190°C).\n")
	assert.True(t, strings.HasSuffix(v.Text, "📖 *Description:*\nPerfectly crispy air fryer chicken breast with minimal oil. Ready in just 20 minutes!"))
	assert.Equal(t, [][]Button{
		{{Text: ButtonBackRecipes, Data: "recipes"}},
		{{Text: ButtonMainMenu, Data: "main_menu"}},
	}, v.Inline)
}

func TestDetailDefaults(t *testing.T) {
	v := Detail(recipes.Detail{Title: "Wings"})
	assert.Contains(t, v.Text, "📋 *Ingredients:*\n\n\n📝 *Instructions:*\nNo instructions available\n\n")
	assert.True(t, strings.HasSuffix(v.Text, "📖 *Description:*\nNo description available"))
}

func TestDetailTruncatesSummary(t *testing.T) {
	long := "<b>" + strings.Repeat("é", 250) + "</b>"
	v := Detail(recipes.Detail{Title: "Wings", Summary: long})
	desc := v.Text[strings.Index(v.Text, "📖 *Description:*\n")+len("📖 *Description:*\n"):]
	assert.Equal(t, strings.Repeat("é", 200)+"...", desc)
}

func TestStripSummary(t *testing.T) {
	in := `The <b>Air Fryer Wings</b> recipe, see <a href="https://spoonacular.com/recipes/wings-1">wings</a>. <i>kept</i>`
	assert.Equal(t, "The Air Fryer Wings recipe, see wings. <i>kept</i>", StripSummary(in))
}

func TestTruncate(t *testing.T) {
	exact := strings.Repeat("a", SummaryLimit)
	assert.Equal(t, exact, Truncate(exact, SummaryLimit))

	over := strings.Repeat("ü", SummaryLimit+1)
	got := Truncate(over, SummaryLimit)
	assert.Equal(t, SummaryLimit+3, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", Truncate("short", SummaryLimit))
}

func TestCategoryFor(t *testing.T) {
	c, ok := CategoryFor(LabelVegetarian)
	require.True(t, ok)
	assert.Equal(t, "vegetarian", c.Params.Diet)
	assert.Equal(t, "Vegetarian Recipes", c.Title)
	assert.Equal(t, "🔍 Fetching vegetarian recipes...", FetchingText(c.Noun))

	q, ok := CategoryFor(LabelQuick)
	require.True(t, ok)
	assert.Equal(t, 30, q.Params.MaxReadyTime)

	_, ok = CategoryFor(LabelSearch)
	assert.False(t, ok)
}

func TestPageUntitledRecipeGetsLabel(t *testing.T) {
	v := Page([]recipes.Summary{{ID: 42, Title: "  "}}, 0, "Recipes")
	assert.Equal(t, "Recipe #42", v.Inline[0][0].Text)
}
