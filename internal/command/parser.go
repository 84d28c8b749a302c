package command

import "strconv"

// Action is the tiny closed set of things a parsed Command can ask for.
type Action interface{ isAction() }

// Balance corresponds to the "balance"/"bal" verb.
type Balance struct{}

func (Balance) isAction() {}

// Mint corresponds to "mint <amount>".
type Mint struct{ Amount int64 }

func (Mint) isAction() {}

// Transfer corresponds to "transfer <destination> <amount>".
type Transfer struct {
	Destination string
	Amount      int64
}

func (Transfer) isAction() {}

// Help corresponds to the locally-handled "help" verb (never reaches
// the engine as a transaction).
type Help struct{}

func (Help) isAction() {}

// Command is one parsed line: any number of stacked proxy hops, at
// most one admin hop, and exactly one action.
type Command struct {
	ProxyHops []string
	Admin     *string
	Action    Action
}

// Parse recognizes one line of the grammar in spec.md §4.4:
//
//	command := ( "proxy" account )* ( "admin" account )? action
//	action  := "balance" | "mint" amount | "transfer" destination amount | "help"
func Parse(input string) (*Command, error) {
	tokens := Tokenize(input)

	i := 0
	var hops []string
	for i < len(tokens) && keyword(tokens[i]) == "proxy" {
		i++
		if i >= len(tokens) {
			return nil, errUnfinishedCommand
		}
		hops = append(hops, tokens[i].Text)
		i++
	}

	var admin *string
	if i < len(tokens) && keyword(tokens[i]) == "admin" {
		i++
		if i >= len(tokens) {
			return nil, errUnfinishedCommand
		}
		a := tokens[i].Text
		admin = &a
		i++
	}

	if i >= len(tokens) {
		return nil, errUnfinishedCommand
	}
	verb := normalizeVerb(keyword(tokens[i]))
	verbTok := tokens[i]
	i++

	var action Action
	switch verb {
	case "balance":
		if i < len(tokens) {
			return nil, unexpectedToken(tokens[i])
		}
		action = Balance{}

	case "help":
		if i < len(tokens) {
			return nil, unexpectedToken(tokens[i])
		}
		action = Help{}

	case "mint":
		if i >= len(tokens) {
			return nil, errUnfinishedCommand
		}
		amount, err := parsePositiveAmount(tokens[i])
		if err != nil {
			return nil, err
		}
		i++
		if i < len(tokens) {
			return nil, unexpectedToken(tokens[i])
		}
		action = Mint{Amount: amount}

	case "transfer":
		if i >= len(tokens) {
			return nil, errUnfinishedCommand
		}
		dest := tokens[i].Text
		i++
		if i >= len(tokens) {
			return nil, errUnfinishedCommand
		}
		amount, err := parsePositiveAmount(tokens[i])
		if err != nil {
			return nil, err
		}
		i++
		if i < len(tokens) {
			return nil, unexpectedToken(tokens[i])
		}
		action = Transfer{Destination: dest, Amount: amount}

	case "proxy":
		return nil, unexpectedProxy(verbTok)
	case "admin":
		return nil, unexpectedAdmin(verbTok)
	default:
		return nil, unknownCommand(verbTok)
	}

	return &Command{ProxyHops: hops, Admin: admin, Action: action}, nil
}

// normalizeVerb expands the one abbreviation spec.md §4.4 names.
func normalizeVerb(verb string) string {
	if verb == "bal" {
		return "balance"
	}
	return verb
}

func parsePositiveAmount(tok Token) (int64, error) {
	n, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return 0, expectedNumber(tok)
	}
	if n <= 0 {
		return 0, expectedPositiveNumber(tok)
	}
	return n, nil
}
