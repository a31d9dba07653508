package main

import "github.com/eiannone/keyboard"

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdTempo
	CmdToggle
	CmdTimeSig
	CmdQuit
)

type Command struct {
	Kind  CommandKind
	Delta int
}

// CommandForKey maps a key press to a command. ok is false for unbound keys.
func CommandForKey(ch rune, key keyboard.Key) (cmd Command, ok bool) {
	switch key {
	case keyboard.KeyArrowUp:
		return Command{Kind: CmdTempo, Delta: 1}, true
	case keyboard.KeyArrowDown:
		return Command{Kind: CmdTempo, Delta: -1}, true
	case keyboard.KeyArrowRight:
		return Command{Kind: CmdTempo, Delta: 5}, true
	case keyboard.KeyArrowLeft:
		return Command{Kind: CmdTempo, Delta: -5}, true
	case keyboard.KeySpace, keyboard.KeyEnter:
		return Command{Kind: CmdToggle}, true
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return Command{Kind: CmdQuit}, true
	}

	switch ch {
	case '+', '=':
		return Command{Kind: CmdTempo, Delta: 1}, true
	case '-', '_':
		return Command{Kind: CmdTempo, Delta: -1}, true
	case ']':
		return Command{Kind: CmdTempo, Delta: 5}, true
	case '[':
		return Command{Kind: CmdTempo, Delta: -5}, true
	case ' ':
		return Command{Kind: CmdToggle}, true
	case 't', 'T':
		return Command{Kind: CmdTimeSig}, true
	case 'q', 'Q':
		return Command{Kind: CmdQuit}, true
	}
	return Command{}, false
}

// Apply runs cmd against m and reports whether the app should quit.
func (cmd Command) Apply(m *Metronome) (quit bool) {
	switch cmd.Kind {
	case CmdTempo:
		m.SetBpm(cmd.Delta)
	case CmdToggle:
		m.Toggle()
	case CmdTimeSig:
		m.ToggleTimeSignature()
	case CmdQuit:
		return true
	}
	return false
}
