package config

import (
	"fmt"
	"sort"
)

// KeyNameFromJSCode converts a JavaScript event.code to our config key name.
// e.g., "KeyR" → "r", "F5" → "f5", "Space" → "space"
func KeyNameFromJSCode(jsCode string) (string, error) {
	name, ok := jsCodeToName[jsCode]
	if !ok {
		return "", fmt.Errorf("unsupported key code: %q", jsCode)
	}
	return name, nil
}

// KeyNames returns every key name KeyNameFromJSCode can produce, sorted.
func KeyNames() []string {
	names := make([]string, 0, len(jsCodeToName))
	for _, n := range jsCodeToName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var jsCodeToName = map[string]string{
	"KeyA": "a", "KeyB": "b", "KeyC": "c", "KeyD": "d",
	"KeyE": "e", "KeyF": "f", "KeyG": "g", "KeyH": "h",
	"KeyI": "i", "KeyJ": "j", "KeyK": "k", "KeyL": "l",
	"KeyM": "m", "KeyN": "n", "KeyO": "o", "KeyP": "p",
	"KeyQ": "q", "KeyR": "r", "KeyS": "s", "KeyT": "t",
	"KeyU": "u", "KeyV": "v", "KeyW": "w", "KeyX": "x",
	"KeyY": "y", "KeyZ": "z",
	"Digit0": "0", "Digit1": "1", "Digit2": "2", "Digit3": "3",
	"Digit4": "4", "Digit5": "5", "Digit6": "6", "Digit7": "7",
	"Digit8": "8", "Digit9": "9",
	"F1": "f1", "F2": "f2", "F3": "f3", "F4": "f4",
	"F5": "f5", "F6": "f6", "F7": "f7", "F8": "f8",
	"F9": "f9", "F10": "f10", "F11": "f11", "F12": "f12",
	"Space": "space", "Enter": "return", "Escape": "escape",
	"Backspace": "delete", "Tab": "tab",
	"ArrowUp": "up", "ArrowDown": "down",
	"ArrowLeft": "left", "ArrowRight": "right",
}
