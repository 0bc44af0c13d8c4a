package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeyTheme     = "t"
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeySpace     = " "
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyJ         = "j"
	KeyK         = "k"
	KeyH         = "h"
	KeyL         = "l"

	// Record screen.
	KeyRetry   = "r"
	KeyFlip    = "f"
	KeyMode    = "m"
	KeySave    = "ctrl+s"
	KeyUpload  = "ctrl+u"
	KeyRemove  = "x"
	KeyDelete  = "delete"
	KeyBackspc = "backspace"

	// Library, Match.
	KeyFilter    = "f"
	KeyAvailable = "a"
	KeyView      = "v"
)

// tabKeys maps the number row to tabs.
var tabKeys = map[string]Tab{
	"1": TabHome,
	"2": TabLibrary,
	"3": TabRecord,
	"4": TabAILab,
	"5": TabMatch,
	"6": TabProgress,
	"7": TabMore,
}
