package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of batch's --ui flag.
type uiMode string

const (
	uiModeAuto uiMode = "auto" // progress view only on a terminal
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

var uiModes = map[string]uiMode{
	"":     uiModeAuto,
	"auto": uiModeAuto,
	"on":   uiModeOn,
	"off":  uiModeOff,
}

// readUIMode parses --ui, ignoring case and surrounding blanks.
func readUIMode(value string) (uiMode, error) {
	if mode, ok := uiModes[strings.ToLower(strings.TrimSpace(value))]; ok {
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI decides whether batch draws the per-set progress view instead
// of printing patterns as plain lines. --quiet and --format=json always
// get plain output, since the view would mix with what they print.
func shouldUseTUI(mode uiMode, quiet bool, format string) bool {
	if quiet || format == "json" || mode == uiModeOff {
		return false
	}
	return mode == uiModeOn || isTerminal(os.Stdout)
}
