package lsystem

// Command is the turtle action a symbol stands for.
type Command uint8

const (
	CommandUnknown Command = iota
	CommandDraw
	CommandMove
	CommandSkip
	CommandTurnLeft
	CommandTurnRight
	CommandPush
	CommandPop
)

func (c Command) String() string {
	switch c {
	case CommandDraw:
		return "draw"
	case CommandMove:
		return "move"
	case CommandSkip:
		return "skip"
	case CommandTurnLeft:
		return "turn-left"
	case CommandTurnRight:
		return "turn-right"
	case CommandPush:
		return "push"
	case CommandPop:
		return "pop"
	default:
		return "unknown"
	}
}

const (
	SymbolTurnLeft  Symbol = "+"
	SymbolTurnRight Symbol = "-"
	SymbolPush      Symbol = "["
	SymbolPop       Symbol = "]"

	// DefaultSkipMarker marks a branch point without drawing anything.
	DefaultSkipMarker Symbol = "X"
)

// Alphabet decides how the turtle reads each symbol. Explicit declarations
// come first, then symbols that have a rule (those draw), then the structural
// commands. A rule for "+" therefore makes "+" draw instead of turn.
type Alphabet struct {
	Draw SymbolSet
	Move SymbolSet
	Skip SymbolSet

	// Rules supplies the implicit drawing symbols.
	Rules RuleSet
}

// DefaultAlphabet draws every symbol that has a rule and skips X.
func DefaultAlphabet(rules RuleSet) Alphabet {
	return Alphabet{
		Skip:  NewSymbolSet(DefaultSkipMarker),
		Rules: rules,
	}
}

// IsZero reports whether no symbol class was declared at all. Declaring an
// empty, non-nil set counts as a declaration.
func (a Alphabet) IsZero() bool {
	return a.Draw == nil && a.Move == nil && a.Skip == nil && a.Rules == nil
}

func (a Alphabet) Resolve(s Symbol) Command {
	switch {
	case a.Skip.Contains(s):
		return CommandSkip
	case a.Move.Contains(s):
		return CommandMove
	case a.Draw.Contains(s):
		return CommandDraw
	}

	if a.Rules.Has(s) {
		return CommandDraw
	}

	switch s {
	case SymbolTurnLeft:
		return CommandTurnLeft
	case SymbolTurnRight:
		return CommandTurnRight
	case SymbolPush:
		return CommandPush
	case SymbolPop:
		return CommandPop
	}
	return CommandUnknown
}

// commandTable caches Resolve so each distinct symbol is classified once
// per walk.
type commandTable struct {
	alphabet Alphabet
	resolved map[Symbol]Command
}

func newCommandTable(a Alphabet) *commandTable {
	return &commandTable{
		alphabet: a,
		resolved: make(map[Symbol]Command),
	}
}

func (t *commandTable) lookup(s Symbol) Command {
	if c, ok := t.resolved[s]; ok {
		return c
	}
	c := t.alphabet.Resolve(s)
	t.resolved[s] = c
	return c
}
