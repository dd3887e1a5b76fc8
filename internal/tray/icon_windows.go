package tray

import _ "embed"

//go:embed assets/icon.ico
var icon []byte
