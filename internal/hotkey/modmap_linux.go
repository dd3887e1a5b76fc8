package hotkey

import "golang.design/x/hotkey"

// X11: Mod1 is Alt, Mod4 is Super.
var modMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
}
