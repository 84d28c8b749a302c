package command

import (
	"errors"

	"centralbank/internal/domain"
)

// ErrHelpIsLocal is returned by Lower when asked to lower a Help
// action, which never becomes a transaction — callers must check for
// command.Help themselves before calling Lower and print usage text
// locally instead.
var ErrHelpIsLocal = errors.New("command: help is answered locally, not lowered")

// Lower builds a domain.TransactionRequest from a parsed Command, an
// author account, and an optional access token, following the
// algorithm of spec.md §4.4:
//
//  1. The proxy hops were already popped by Parse, in encounter order.
//  2. If an admin hop was popped, the action account becomes it and the
//     authorization tail is AdminAuthorized(author); otherwise the
//     account stays author with tail SelfAuthorized.
//  3. Each proxy hop wraps the tail outward, innermost-collected hop
//     first, so [p1, p2] yields ProxyAuthorized(p1, ProxyAuthorized(p2, tail)).
func Lower(cmd *Command, author domain.AccountId, token *domain.AccessTokenId) (domain.TransactionRequest, error) {
	action, err := lowerAction(cmd.Action)
	if err != nil {
		return domain.TransactionRequest{}, err
	}

	var account domain.AccountId
	var tail domain.Authorization
	if cmd.Admin != nil {
		account = domain.AccountId(*cmd.Admin)
		tail = domain.AdminAuthorized{AdminId: author}
	} else {
		account = author
		tail = domain.SelfAuthorized{}
	}

	auth := tail
	for i := len(cmd.ProxyHops) - 1; i >= 0; i-- {
		auth = domain.ProxyAuthorized{ProxyId: domain.AccountId(cmd.ProxyHops[i]), Tail: auth}
	}

	return domain.TransactionRequest{
		Account:       account,
		Authorization: auth,
		AccessToken:   token,
		Action:        action,
	}, nil
}

func lowerAction(a Action) (domain.AccountAction, error) {
	switch v := a.(type) {
	case Balance:
		return domain.QueryBalance{}, nil
	case Mint:
		return domain.Mint{Amount: domain.CurrencyAmount(v.Amount)}, nil
	case Transfer:
		return domain.Transfer{Amount: domain.CurrencyAmount(v.Amount), Destination: domain.AccountId(v.Destination)}, nil
	case Help:
		return nil, ErrHelpIsLocal
	default:
		return nil, ErrHelpIsLocal
	}
}

// HelpText is the static usage string the "help" verb prints, adapted
// from the command listing of the original chat-bot front-end (see
// SPEC_FULL.md §C.3). It never touches the engine.
const HelpText = `commands:
  balance                        show your balance
  mint <amount>                  mint currency into your account
  transfer <account> <amount>    send currency to another account
  proxy <account> ...            act through a chain of proxy accounts
  admin <account>                act on another account as its admin
  help                            show this message`
