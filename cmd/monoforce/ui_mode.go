package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the value of `expand --ui`. It implements pflag.Value, so a bad
// value fails during flag parsing.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModeNames = [...]string{
	uiModeAuto: "auto",
	uiModeOn:   "on",
	uiModeOff:  "off",
}

func (m uiMode) String() string {
	if int(m) < len(uiModeNames) {
		return uiModeNames[m]
	}
	return fmt.Sprintf("uiMode(%d)", uint8(m))
}

func (m *uiMode) Set(value string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		*m = uiModeAuto
		return nil
	}
	for i, name := range uiModeNames {
		if name == v {
			*m = uiMode(i) //nolint:gosec // i < len(uiModeNames)
			return nil
		}
	}
	return fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

func (*uiMode) Type() string { return "auto|on|off" }

// progressView решает, показывать ли TUI: auto только на терминале и не
// вперемешку с файлами, которые печатаются в stdout.
func (m uiMode) progressView(toStdout bool) bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return !toStdout && isTerminal(os.Stdout)
	}
}
