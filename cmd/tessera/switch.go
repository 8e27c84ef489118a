package main

import (
	"fmt"
	"os"
	"strings"
)

// autoSwitch is an auto|on|off flag value; auto follows the terminal.
type autoSwitch string

const (
	switchAuto autoSwitch = "auto"
	switchOn   autoSwitch = "on"
	switchOff  autoSwitch = "off"
)

func parseSwitch(flag, value string) (autoSwitch, error) {
	switch s := autoSwitch(strings.TrimSpace(strings.ToLower(value))); s {
	case "":
		return switchAuto, nil
	case switchAuto, switchOn, switchOff:
		return s, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

// enabledFor resolves the switch against f.
func (s autoSwitch) enabledFor(f *os.File) bool {
	switch s {
	case switchOn:
		return true
	case switchOff:
		return false
	default:
		return isTerminal(f)
	}
}
