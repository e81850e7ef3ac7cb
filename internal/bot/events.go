package bot

// Event is an inbound chat event. The set is closed: Command, ButtonPress and Text.
type Event interface {
	isEvent()
}

// Command is a slash command without the slash, e.g. "start".
type Command struct {
	Name string
}

// ButtonPress is an inline button tap carrying its raw payload.
type ButtonPress struct {
	Payload string
}

// Text is a free-text message, including reply keyboard taps.
type Text struct {
	Body string
}

func (Command) isEvent()     {}
func (ButtonPress) isEvent() {}
func (Text) isEvent()        {}
