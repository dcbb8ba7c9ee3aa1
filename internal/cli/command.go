package cli

import (
	"fmt"
	"strings"

	"github.com/badhon18478/Marketplace-sub000/internal/domain/browse"
)

// Kind classifies a parsed REPL line.
type Kind int

const (
	KindNone Kind = iota
	KindAction
	KindShow
	KindHelp
	KindQuit
)

// Command is one parsed REPL line. Action is set only for KindAction.
type Command struct {
	Kind   Kind
	Action browse.Action
}

type commandSpec struct {
	op       browse.Op
	kind     Kind
	needsArg bool
	bound    bool
}

var commands = map[string]commandSpec{
	"search":   {op: browse.OpSetSearch, kind: KindAction},
	"submit":   {op: browse.OpSubmitSearch, kind: KindAction},
	"category": {op: browse.OpSetCategory, kind: KindAction, needsArg: true},
	"cat":      {op: browse.OpSetCategory, kind: KindAction, needsArg: true},
	"sort":     {op: browse.OpSetSort, kind: KindAction, needsArg: true},
	"min":      {op: browse.OpSetMinBudget, kind: KindAction, needsArg: true, bound: true},
	"max":      {op: browse.OpSetMaxBudget, kind: KindAction, needsArg: true, bound: true},
	"page":     {op: browse.OpSetPage, kind: KindAction, needsArg: true},
	"next":     {op: browse.OpNextPage, kind: KindAction},
	"n":        {op: browse.OpNextPage, kind: KindAction},
	"prev":     {op: browse.OpPrevPage, kind: KindAction},
	"p":        {op: browse.OpPrevPage, kind: KindAction},
	"clear":    {op: browse.OpClearFilters, kind: KindAction},
	"show":     {kind: KindShow},
	"ls":       {kind: KindShow},
	"help":     {kind: KindHelp},
	"?":        {kind: KindHelp},
	"quit":     {kind: KindQuit},
	"exit":     {kind: KindQuit},
	"q":        {kind: KindQuit},
}

// ParseCommand turns one input line into a Command. Blank lines parse to
// KindNone. Values are passed through verbatim; the controller validates
// them when the action is applied.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: KindNone}, nil
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	spec, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q (type help for a list)", name)
	}
	if spec.needsArg && arg == "" {
		return Command{}, fmt.Errorf("%s needs a value", name)
	}
	if spec.kind != KindAction {
		return Command{Kind: spec.kind}, nil
	}

	// "-" and "any" clear a budget bound.
	if spec.bound && (arg == "-" || strings.EqualFold(arg, "any")) {
		arg = ""
	}

	return Command{
		Kind:   KindAction,
		Action: browse.Action{Op: spec.op, Value: arg},
	}, nil
}

const helpText = `Commands:
  search <text>        edit the search text (not applied until submit)
  submit [text]        run the search, optionally replacing the text first
  category <name>      filter by category (All clears the filter)
  sort newest|oldest   order by posting date
  min <n|->            minimum budget, "-" clears it
  max <n|->            maximum budget, "-" clears it
  page <n>             jump to a page
  next, prev           move one page
  clear                reset every filter
  show                 print the current page again
  help                 show this list
  quit                 leave
`
