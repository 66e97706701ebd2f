package flow

// Button is one keyboard button. A non-empty Data makes it an inline callback
// button; otherwise it is a plain reply button whose label is sent back as
// text.
type Button struct {
	Label string
	Data  string
}

// Reply is a transport-agnostic response: text plus a keyboard description.
// The Telegram adapter renders it; nothing in this package knows about chat
// APIs.
type Reply struct {
	Text     string
	Markdown bool
	Buttons  [][]Button
	Inline   bool
	Calendar bool // render the date-picker widget
	MainMenu bool // attach the main menu keyboard
}

func text(s string) Reply { return Reply{Text: s} }

func markdown(s string) Reply { return Reply{Text: s, Markdown: true} }

func menu(s string) Reply { return Reply{Text: s, MainMenu: true} }

func calendar(s string) Reply { return Reply{Text: s, Calendar: true} }
