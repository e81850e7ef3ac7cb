package bot

import (
	tg "github.com/m3rciful/recipebot/core/telegram"
	"github.com/m3rciful/recipebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/recipebot/core/telegram/helpers"
	"github.com/m3rciful/recipebot/core/telegram/keyboard"
	domaincb "github.com/m3rciful/recipebot/internal/callbacks"
	"github.com/m3rciful/recipebot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

// Register binds the controller to the Telegram registry.
func Register(reg *tg.Registry, ctrl *Controller) error {
	for name, cmd := range map[string]tg.Command{
		"/start":   {Description: "Show the main menu", Aliases: []string{"menu"}, Handler: commandHandler(ctrl, "start")},
		"/help":    {Description: "How to use the bot", Handler: commandHandler(ctrl, "help")},
		"/history": {Description: "Your recent searches", Handler: commandHandler(ctrl, "history")},
	} {
		if err := reg.RegisterCommand(name, cmd); err != nil {
			return err
		}
	}

	press := func(c tele.Context) error {
		return dispatch(c, ctrl, ButtonPress{Payload: callbacks.Data(c)})
	}
	for _, key := range []string{domaincb.KeyMainMenu, domaincb.KeyRecipes, domaincb.KeyPage, domaincb.KeyRecipe} {
		if err := reg.RegisterCallback(key, press); err != nil {
			return err
		}
	}
	// Stale or foreign payloads still reach the controller, which acks them.
	reg.SetCallbackNotFound(press)

	reg.SetTextFallback(func(c tele.Context) error {
		return dispatch(c, ctrl, Text{Body: c.Text()})
	})
	return nil
}

func commandHandler(ctrl *Controller, name string) tele.HandlerFunc {
	return func(c tele.Context) error {
		return dispatch(c, ctrl, Command{Name: name})
	}
}

func dispatch(c tele.Context, ctrl *Controller, ev Event) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	ctx := tghelpers.Context(c)
	return ctrl.Handle(ctx, user.ID, ev, teleResponder{c: c})
}

// teleResponder renders views through the async send helpers.
type teleResponder struct {
	c tele.Context
}

func (r teleResponder) Send(v menu.View) error {
	return tghelpers.SendText(r.c, v.Text, sendOptions(v, true))
}

func (r teleResponder) Edit(v menu.View) error {
	return tghelpers.EditText(r.c, v.Text, sendOptions(v, false))
}

func (r teleResponder) Ack() error {
	return tghelpers.Ack(r.c)
}

// sendOptions maps a view to telebot options. Edits cannot carry a reply
// keyboard, so MainMenu is only honoured when allowReply is set.
func sendOptions(v menu.View, allowReply bool) *tele.SendOptions {
	opts := &tele.SendOptions{}
	if v.Markdown {
		opts.ParseMode = tele.ModeMarkdown
	}
	switch {
	case len(v.Inline) > 0:
		opts.ReplyMarkup = inlineMarkup(v.Inline)
	case v.MainMenu && allowReply:
		opts.ReplyMarkup = MainMenuMarkup()
	}
	return opts
}

// MainMenuMarkup builds the persistent reply keyboard.
func MainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(menu.MainMenuRows...)
}

func inlineMarkup(rows [][]menu.Button) *tele.ReplyMarkup {
	out := make([][]keyboard.InlineBtn, len(rows))
	for i, row := range rows {
		out[i] = make([]keyboard.InlineBtn, len(row))
		for j, b := range row {
			out[i][j] = keyboard.InlineBtn{Text: b.Text, Data: b.Data}
		}
	}
	return keyboard.InlineButtonsRows(out...)
}
