package lsystem

import (
	"sort"
	"strings"
	"unicode"
)

// Symbol is a single grammar token. Most grammars use one character per
// symbol but longer names are allowed.
type Symbol string

type SymbolSet map[Symbol]struct{}

func NewSymbolSet(symbols ...Symbol) SymbolSet {
	ss := make(SymbolSet, len(symbols))
	for _, s := range symbols {
		ss.Add(s)
	}
	return ss
}

func (ss SymbolSet) Contains(s Symbol) bool {
	_, exists := ss[s]
	return exists
}

func (ss SymbolSet) Add(s Symbol) {
	ss[s] = struct{}{}
}

// AsSlice returns the members in lexical order.
func (ss SymbolSet) AsSlice() []Symbol {
	slice := make([]Symbol, 0, len(ss))
	for s := range ss {
		slice = append(slice, s)
	}
	sort.Slice(slice, func(i, j int) bool { return slice[i] < slice[j] })
	return slice
}

// Symbols splits a written sequence into symbols. A string containing
// whitespace is split into fields, anything else into single characters.
func Symbols(str string) []Symbol {
	if strings.IndexFunc(str, unicode.IsSpace) >= 0 {
		fields := strings.Fields(str)
		symbols := make([]Symbol, len(fields))
		for i, f := range fields {
			symbols[i] = Symbol(f)
		}
		return symbols
	}

	symbols := make([]Symbol, 0, len(str))
	for _, r := range str {
		symbols = append(symbols, Symbol(r))
	}
	return symbols
}

// Join concatenates symbols back into a string. Multi-character symbols are
// separated by spaces so the result splits back into the same sequence.
func Join(symbols []Symbol) string {
	sep := ""
	for _, s := range symbols {
		if len([]rune(string(s))) > 1 {
			sep = " "
			break
		}
	}

	var sb strings.Builder
	for i, s := range symbols {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(string(s))
	}
	return sb.String()
}
