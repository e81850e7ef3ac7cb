package menu

import "fmt"

// Static replies.
const (
	WelcomeText = "🔥 *Welcome to Air Fryer Recipes Bot!* 🔥\n\n" +
		"I'll help you discover delicious air fryer recipes!\n\n" +
		"🍽 *Features:*\n" +
		"• Search recipes by ingredients\n" +
		"• Browse popular dishes\n" +
		"• Find quick meals (<30 min)\n" +
		"• Vegetarian options\n" +
		"• Meat lover's selections\n\n" +
		"Use the menu below to get started:"

	HelpText = "❓ *Air Fryer Recipes Bot Help*\n\n" +
		"This bot helps you find delicious air fryer recipes!\n\n" +
		"📱 *How to use:*\n" +
		"• Use the menu buttons to navigate\n" +
		"• Tap 'Search Recipes' to find recipes by name\n" +
		"• Browse categories like 'Vegetarian' or 'Quick'\n" +
		"• Click on any recipe to see details\n\n" +
		"📋 *Categories:*\n" +
		"• 📚 Random - Surprise recipes\n" +
		"• ⭐ Popular - Most searched recipes\n" +
		"• 🥗 Vegetarian - Plant-based options\n" +
		"• 🥩 Meat - For meat lovers\n" +
		"• ⏱ Quick - Under 30 minutes\n\n" +
		"👨‍🍳 Happy cooking!"

	SearchPromptText   = "Enter a search term (e.g., chicken, vegetables, beef):"
	SearchingText      = "🔍 Searching for recipes..."
	FetchingDetailText = "🔍 Fetching recipe details..."
	NotUnderstoodText  = "I didn't understand that. Please use the menu buttons below:"
	NoResultsText      = "No recipes found. Try a different search term or category."
	NoMoreText         = "No more recipes to show."
	NotFoundText       = "Recipe not found!"

	HistoryTitle           = "🕘 *Your recent searches:*"
	HistoryEmptyText       = "You haven't searched for anything yet."
	HistoryUnavailableText = "Search history is unavailable right now."

	NoInstructionsText = "No instructions available"
	NoDescriptionText  = "No description available"

	// DefaultPageTitle heads pages reached through pagination buttons.
	DefaultPageTitle = "Recipes"
	// RandomTitle heads the unfiltered search behind the "Back to Recipes" button.
	RandomTitle = "Random Recipes"
)

// FetchingText is the placeholder sent before a category search.
func FetchingText(noun string) string {
	return fmt.Sprintf("🔍 Fetching %s recipes...", noun)
}

// SearchTitle heads the first page of a free-text search.
func SearchTitle(term string) string {
	return "Search Results: " + term
}

// NoResultsForText is sent when a free-text search finds nothing.
func NoResultsForText(term string) string {
	return fmt.Sprintf("Sorry, no recipes found for '%s'. Try another search term.", term)
}
