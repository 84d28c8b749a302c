// cmd/bankctl is a thin command-line client over a running bankd: it
// parses one line of the command grammar of spec.md §4.4, lowers it to
// a transaction request, POSTs it to /api/transaction, and prints the
// decoded result or error.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"centralbank/internal/command"
	"centralbank/internal/domain"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "bankd base URL")
	account := flag.String("account", "", "acting account id")
	token := flag.String("token", "", "access token id")
	flag.Parse()

	line := strings.Join(flag.Args(), " ")
	if line == "" {
		fmt.Fprintln(os.Stderr, "usage: bankctl -account <id> -token <id> <command...>")
		os.Exit(2)
	}
	if *account == "" {
		fmt.Fprintln(os.Stderr, "bankctl: -account is required")
		os.Exit(2)
	}

	if err := run(*addr, *account, *token, line); err != nil {
		fmt.Fprintln(os.Stderr, "bankctl:", err)
		os.Exit(1)
	}
}

func run(addr, account, token, line string) error {
	cmd, err := command.Parse(line)
	if err != nil {
		return err
	}
	if _, ok := cmd.Action.(command.Help); ok {
		fmt.Println(command.HelpText)
		return nil
	}

	var tokenID *domain.AccessTokenId
	if token != "" {
		id := domain.AccessTokenId(token)
		tokenID = &id
	}

	req, err := command.Lower(cmd, domain.AccountId(account), tokenID)
	if err != nil {
		return err
	}

	result, txErr, err := submit(addr, req)
	if err != nil {
		return err
	}
	if txErr != nil {
		fmt.Printf("error: %s\n", txErr.Error())
		return nil
	}
	fmt.Println(describe(result))
	return nil
}

func submit(addr string, req domain.TransactionRequest) (domain.TransactionResult, *domain.TransactionError, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}

	resp, err := http.Post(addr+"/api/transaction", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var envelope struct {
		Case   string            `json:"Case"`
		Fields []json.RawMessage `json:"Fields"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(envelope.Fields) != 1 {
		return nil, nil, fmt.Errorf("malformed envelope: %s", raw)
	}

	switch envelope.Case {
	case "Ok":
		result, err := domain.UnmarshalTransactionResult(envelope.Fields[0])
		if err != nil {
			return nil, nil, err
		}
		return result, nil, nil
	case "Error":
		txErr, err := domain.UnmarshalTransactionError(envelope.Fields[0])
		if err != nil {
			return nil, nil, err
		}
		return nil, txErr, nil
	default:
		return nil, nil, fmt.Errorf("unknown envelope Case %q", envelope.Case)
	}
}

func describe(result domain.TransactionResult) string {
	switch r := result.(type) {
	case domain.Balance:
		return fmt.Sprintf("balance: %d", r.Amount)
	case domain.Successful:
		return fmt.Sprintf("ok (transaction %d)", r.Id)
	case domain.AccessToken:
		return fmt.Sprintf("token: %s", r.Id)
	case domain.AccessScopes:
		names := make([]string, len(r.Scopes))
		for i, s := range r.Scopes {
			names[i] = string(s)
		}
		return "scopes: " + strings.Join(names, " ")
	case domain.History:
		var b strings.Builder
		fmt.Fprintf(&b, "%d transaction(s):\n", len(r.Transactions))
		for _, tx := range r.Transactions {
			fmt.Fprintf(&b, "  #%d %s %s\n", tx.Id, tx.PerformedAt.Format("2006-01-02T15:04:05Z"), tx.Account)
		}
		return strings.TrimRight(b.String(), "\n")
	default:
		return fmt.Sprintf("%#v", result)
	}
}
