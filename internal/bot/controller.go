// Package bot drives the recipe browsing conversation.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/recipebot/core/logger"
	"github.com/m3rciful/recipebot/internal/callbacks"
	"github.com/m3rciful/recipebot/internal/journal"
	"github.com/m3rciful/recipebot/internal/menu"
	"github.com/m3rciful/recipebot/internal/recipes"
	"github.com/m3rciful/recipebot/internal/session"
)

const (
	// DefaultSearchLimit is the number of results requested for free-text searches.
	DefaultSearchLimit = 15
	// HistoryLimit is the number of searches /history lists.
	HistoryLimit = 5
)

// Responder delivers views to the chat the event came from.
type Responder interface {
	// Send posts a new message.
	Send(v menu.View) error
	// Edit replaces the message an inline button belongs to.
	Edit(v menu.View) error
	// Ack answers a button press.
	Ack() error
}

// Options configures NewController.
type Options struct {
	Source  recipes.Source
	Store   session.Store
	Journal journal.Recorder
	// History backs /history; nil reports an empty history.
	History journal.Reader
	// SearchLimit caps free-text search results; 0 selects DefaultSearchLimit.
	SearchLimit int
}

// Controller maps events to recipe lookups, session updates and rendered views.
type Controller struct {
	source      recipes.Source
	store       session.Store
	journal     journal.Recorder
	history     journal.Reader
	searchLimit int
}

// NewController validates opts and fills defaults.
func NewController(opts Options) (*Controller, error) {
	if opts.Source == nil {
		return nil, errors.New("bot: recipe source is required")
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore()
	}
	if opts.Journal == nil {
		opts.Journal = journal.Nop{}
	}
	if opts.History == nil {
		opts.History = journal.Nop{}
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	return &Controller{
		source:      opts.Source,
		store:       opts.Store,
		journal:     opts.Journal,
		history:     opts.History,
		searchLimit: opts.SearchLimit,
	}, nil
}

// Handle processes one event from userID and answers through out.
func (c *Controller) Handle(ctx context.Context, userID int64, ev Event, out Responder) error {
	switch e := ev.(type) {
	case Command:
		return c.onCommand(ctx, userID, e, out)
	case ButtonPress:
		return c.onButton(ctx, userID, e, out)
	case Text:
		return c.onText(ctx, userID, e, out)
	default:
		return fmt.Errorf("bot: unsupported event %T", ev)
	}
}

func (c *Controller) onCommand(ctx context.Context, userID int64, cmd Command, out Responder) error {
	switch cmd.Name {
	case "start", "menu":
		return out.Send(menu.Welcome())
	case "help":
		return out.Send(menu.Help())
	case "history":
		entries, err := c.history.Recent(ctx, userID, HistoryLimit)
		if err != nil {
			logger.Warn(ctx, "journal", "history.fail", slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
			return out.Send(menu.WithMainMenu(menu.HistoryUnavailableText))
		}
		return out.Send(menu.History(entries))
	}
	return nil
}

func (c *Controller) onButton(ctx context.Context, userID int64, press ButtonPress, out Responder) error {
	if err := out.Ack(); err != nil {
		logger.Warn(ctx, "tg", "callback.ack.fail", slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	}

	action, err := callbacks.Parse(press.Payload)
	if err != nil {
		logger.Debug(ctx, "tg", "callback.ignored",
			slog.String("status", "skip"),
			slog.String("payload", logger.SanitizeLimit(press.Payload, 64)),
		)
		return nil
	}

	switch action.Kind {
	case callbacks.KindMainMenu:
		// The reply keyboard cannot be attached to an edited message.
		return out.Send(menu.Welcome())
	case callbacks.KindRecipes:
		results := c.search(ctx, userID, journal.SourceRecipes, recipes.SearchParams{})
		c.store.SetResults(userID, results)
		return out.Edit(menu.Page(results, 0, menu.RandomTitle))
	case callbacks.KindPage:
		results := c.storedOrFresh(ctx, userID)
		return out.Edit(menu.Page(results, int(action.N), menu.DefaultPageTitle))
	case callbacks.KindRecipe:
		return c.showDetail(ctx, action.N, out)
	}
	return nil
}

func (c *Controller) onText(ctx context.Context, userID int64, msg Text, out Responder) error {
	switch msg.Body {
	case menu.LabelSearch:
		c.store.SetAwaitingInput(userID, true)
		logger.Debug(ctx, "tg", "state.change", slog.String("state", string(session.StateAwaitingSearchText)))
		return out.Send(menu.Plain(menu.SearchPromptText))
	case menu.LabelHelp:
		return out.Send(menu.Help())
	}

	if cat, ok := menu.CategoryFor(msg.Body); ok {
		c.store.SetAwaitingInput(userID, false)
		if err := out.Send(menu.Plain(menu.FetchingText(cat.Noun))); err != nil {
			return err
		}
		results := c.search(ctx, userID, journal.SourceCategory, cat.Params)
		c.store.SetResults(userID, results)
		return out.Send(menu.Page(results, 0, cat.Title))
	}

	// Claim the pending search atomically so a duplicate message cannot search
	// twice. A blank term leaves the prompt pending.
	term := strings.ToLower(strings.TrimSpace(msg.Body))
	var awaiting bool
	c.store.Update(userID, func(s *session.Session) {
		awaiting = s.State == session.StateAwaitingSearchText
		if term != "" {
			s.State = session.StateIdle
		}
	})
	if !awaiting {
		return out.Send(menu.WithMainMenu(menu.NotUnderstoodText))
	}
	if term == "" {
		return out.Send(menu.Plain(menu.SearchPromptText))
	}

	if err := out.Send(menu.Plain(menu.SearchingText)); err != nil {
		return err
	}
	results := c.search(ctx, userID, journal.SourceSearch, recipes.SearchParams{Query: term, Number: c.searchLimit})
	c.store.SetResults(userID, results)
	if len(results) == 0 {
		return out.Send(menu.WithMainMenu(menu.NoResultsForText(term)))
	}
	return out.Send(menu.Page(results, 0, menu.SearchTitle(term)))
}

func (c *Controller) showDetail(ctx context.Context, id int64, out Responder) error {
	if err := out.Edit(menu.Plain(menu.FetchingDetailText)); err != nil {
		return err
	}
	d, ok := c.source.Detail(ctx, id)
	if !ok {
		return out.Edit(menu.WithMainMenu(menu.NotFoundText))
	}
	return out.Edit(menu.Detail(d))
}

// storedOrFresh returns the user's stored results, running and storing an
// unfiltered search when nothing is stored yet.
func (c *Controller) storedOrFresh(ctx context.Context, userID int64) []recipes.Summary {
	if s := c.store.Get(userID); s.HasResults {
		return s.Results
	}
	results := c.search(ctx, userID, journal.SourcePage, recipes.SearchParams{})
	c.store.SetResults(userID, results)
	return results
}

func (c *Controller) search(ctx context.Context, userID int64, source string, p recipes.SearchParams) []recipes.Summary {
	results := c.source.Search(ctx, p)
	logger.Info(ctx, "recipes", "search",
		slog.String("source", source),
		slog.String("query", logger.SanitizeLimit(p.Query, 64)),
		slog.String("diet", p.Diet),
		slog.Int("max_ready_time", p.MaxReadyTime),
		slog.Int("results", len(results)),
	)
	c.journal.Record(ctx, journal.Entry{
		UserID:       userID,
		Source:       source,
		Query:        p.Query,
		Diet:         p.Diet,
		Cuisine:      p.Cuisine,
		MaxReadyTime: p.MaxReadyTime,
		Results:      len(results),
	})
	return results
}
