// Package callbacks defines the inline button payloads understood by the bot.
//
// Payloads are plain strings: "main_menu", "recipes", "page_<n>" and "recipe_<id>".
package callbacks

import (
	"errors"
	"strconv"

	tgcallbacks "github.com/m3rciful/recipebot/core/telegram/callbacks"
)

// Kind enumerates button actions.
type Kind int

const (
	// KindMainMenu returns to the welcome screen.
	KindMainMenu Kind = iota + 1
	// KindRecipes runs a fresh unfiltered search.
	KindRecipes
	// KindPage shows page N of the stored result set.
	KindPage
	// KindRecipe shows the detail view of recipe N.
	KindRecipe
)

// Registry keys, as produced by tgcallbacks.Split.
const (
	KeyMainMenu = "main_menu"
	KeyRecipes  = "recipes"
	KeyPage     = "page"
	KeyRecipe   = "recipe"
)

// ErrUnknownPayload is returned for payloads this bot never emits.
var ErrUnknownPayload = errors.New("callbacks: unknown payload")

// Action is a parsed button payload. N is the page index or recipe id.
type Action struct {
	Kind Kind
	N    int64
}

// Parse turns a raw payload into an Action.
func Parse(data string) (Action, error) {
	key, arg := tgcallbacks.Split(data)
	switch key {
	case KeyMainMenu:
		if arg == "" {
			return Action{Kind: KindMainMenu}, nil
		}
	case KeyRecipes:
		if arg == "" {
			return Action{Kind: KindRecipes}, nil
		}
	case KeyPage:
		if n, err := strconv.ParseInt(arg, 10, 32); err == nil && n >= 0 {
			return Action{Kind: KindPage, N: n}, nil
		}
	case KeyRecipe:
		if n, err := strconv.ParseInt(arg, 10, 64); err == nil && n > 0 {
			return Action{Kind: KindRecipe, N: n}, nil
		}
	}
	return Action{}, ErrUnknownPayload
}

// String encodes the action back into its payload.
func (a Action) String() string {
	switch a.Kind {
	case KindMainMenu:
		return KeyMainMenu
	case KindRecipes:
		return KeyRecipes
	case KindPage:
		return Page(int(a.N))
	case KindRecipe:
		return Recipe(a.N)
	}
	return ""
}

// MainMenu is the payload of the "Main Menu" button.
func MainMenu() string { return KeyMainMenu }

// Recipes is the payload of the "Back to Recipes" button.
func Recipes() string { return KeyRecipes }

// Page is the payload of a pagination button.
func Page(n int) string {
	return tgcallbacks.Join(KeyPage, strconv.Itoa(n))
}

// Recipe is the payload of a recipe button.
func Recipe(id int64) string {
	return tgcallbacks.Join(KeyRecipe, strconv.FormatInt(id, 10))
}
