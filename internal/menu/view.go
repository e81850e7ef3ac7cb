// Package menu renders the bot's screens: reply keyboard, recipe pages and detail views.
package menu

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/m3rciful/recipebot/core/telegram/format"
	"github.com/m3rciful/recipebot/internal/callbacks"
	"github.com/m3rciful/recipebot/internal/journal"
	"github.com/m3rciful/recipebot/internal/recipes"
)

const (
	// PageSize is the number of recipes per page.
	PageSize = 3
	// SummaryLimit is the rune budget of the description in the detail view.
	SummaryLimit = 200
)

// Button is an inline button with a raw callback payload.
type Button struct {
	Text string
	Data string
}

// View is a rendered screen, independent of the chat transport.
type View struct {
	Text string
	// Markdown selects legacy Markdown parse mode.
	Markdown bool
	// Inline is the inline keyboard, one slice per row.
	Inline [][]Button
	// MainMenu attaches the persistent reply keyboard.
	MainMenu bool
}

// Plain is a text-only view.
func Plain(text string) View {
	return View{Text: text}
}

// WithMainMenu is a plain-text view carrying the reply keyboard.
func WithMainMenu(text string) View {
	return View{Text: text, MainMenu: true}
}

// Welcome is the /start screen.
func Welcome() View {
	return View{Text: WelcomeText, Markdown: true, MainMenu: true}
}

// Help is the help screen.
func Help() View {
	return View{Text: HelpText, Markdown: true, MainMenu: true}
}

// Window is the visible slice of a result set.
type Window struct {
	Start, End int
	HasPrev    bool
	HasNext    bool
}

// Empty reports whether the page has nothing to show.
func (w Window) Empty() bool { return w.Start >= w.End }

// Paginate computes the visible range [Start, End) of page for total items.
// Negative pages are treated as 0.
func Paginate(total, page int) Window {
	if page < 0 {
		page = 0
	}
	start := page * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}
	return Window{
		Start:   start,
		End:     end,
		HasPrev: page > 0,
		HasNext: page*PageSize+PageSize < total,
	}
}

// Page renders page of results under title.
func Page(results []recipes.Summary, page int, title string) View {
	if len(results) == 0 {
		return WithMainMenu(NoResultsText)
	}
	if page < 0 {
		page = 0
	}
	w := Paginate(len(results), page)
	if w.Empty() {
		return WithMainMenu(NoMoreText)
	}

	rows := make([][]Button, 0, w.End-w.Start+2)
	for _, r := range results[w.Start:w.End] {
		rows = append(rows, []Button{{Text: buttonTitle(r), Data: callbacks.Recipe(r.ID)}})
	}
	var nav []Button
	if w.HasPrev {
		nav = append(nav, Button{Text: ButtonPrevious, Data: callbacks.Page(page - 1)})
	}
	if w.HasNext {
		nav = append(nav, Button{Text: ButtonNext, Data: callbacks.Page(page + 1)})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, []Button{{Text: ButtonMainMenu, Data: callbacks.MainMenu()}})

	return View{
		Text: fmt.Sprintf("📋 %s\nShowing recipes %d-%d of %d:",
			format.MDBold(title), w.Start+1, w.End, len(results)),
		Markdown: true,
		Inline:   rows,
	}
}

// buttonTitle never returns an empty label; Telegram rejects those.
func buttonTitle(r recipes.Summary) string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return fmt.Sprintf("Recipe #%d", r.ID)
}

// Detail renders the full recipe view.
func Detail(d recipes.Detail) View {
	ingredients := make([]string, 0, len(d.Ingredients))
	for _, ing := range d.Ingredients {
		ingredients = append(ingredients, "• "+format.MD(ing))
	}

	instructions := d.Instructions
	if strings.TrimSpace(instructions) == "" {
		instructions = NoInstructionsText
	}
	summary := d.Summary
	if strings.TrimSpace(summary) == "" {
		summary = NoDescriptionText
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔥 %s\n\n", format.MDBold(d.Title))
	fmt.Fprintf(&b, "📋 *Ingredients:*\n%s\n\n", strings.Join(ingredients, "\n"))
	fmt.Fprintf(&b, "📝 *Instructions:*\n%s\n\n", format.MD(instructions))
	fmt.Fprintf(&b, "📖 *Description:*\n%s", format.MD(Truncate(StripSummary(summary), SummaryLimit)))

	return View{
		Text:     b.String(),
		Markdown: true,
		Inline: [][]Button{
			{{Text: ButtonBackRecipes, Data: callbacks.Recipes()}},
			{{Text: ButtonMainMenu, Data: callbacks.MainMenu()}},
		},
	}
}

// History lists recent searches, newest first.
func History(entries []journal.Entry) View {
	if len(entries) == 0 {
		return WithMainMenu(HistoryEmptyText)
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, HistoryTitle)
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("• %s (%d found)", format.MD(describeSearch(e)), e.Results))
	}
	return View{Text: strings.Join(lines, "\n"), Markdown: true, MainMenu: true}
}

func describeSearch(e journal.Entry) string {
	switch {
	case e.Query != "":
		return fmt.Sprintf("%q", e.Query)
	case e.Diet != "":
		return e.Diet
	case e.MaxReadyTime > 0:
		return fmt.Sprintf("under %d min", e.MaxReadyTime)
	}
	return "random"
}

var openAnchorRe = regexp.MustCompile(`<a\s+href[^>]*>`)

var summaryTags = strings.NewReplacer("<b>", "", "</b>", "", "</a>", "")

// StripSummary removes the bold and anchor markup Spoonacular embeds in summaries.
// Other markup is left as is.
func StripSummary(s string) string {
	return openAnchorRe.ReplaceAllString(summaryTags.Replace(s), "")
}

// Truncate keeps the first limit runes of s and appends "..." only when something was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
