package command

import "fmt"

// ErrorKind enumerates the closed set of parse-error tags from spec.md
// §4.4.
type ErrorKind string

const (
	ErrUnknownCommand         ErrorKind = "UnknownCommand"
	ErrUnexpectedToken        ErrorKind = "UnexpectedToken"
	ErrExpectedNumber         ErrorKind = "ExpectedNumber"
	ErrExpectedPositiveNumber ErrorKind = "ExpectedPositiveNumber"
	ErrUnexpectedProxy        ErrorKind = "UnexpectedProxy"
	ErrUnexpectedAdmin        ErrorKind = "UnexpectedAdmin"
	ErrUnfinishedCommand      ErrorKind = "UnfinishedCommand"
)

// ParseError is the single error type Parse returns. Token is empty for
// UnfinishedCommand, which has no offending token to point at.
type ParseError struct {
	Kind  ErrorKind
	Token string
}

func (e *ParseError) Error() string {
	if e.Kind == ErrUnfinishedCommand {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s(%q)", e.Kind, e.Token)
}

// Is compares by Kind only, so errors.Is(err, &ParseError{Kind: ErrUnfinishedCommand})
// matches any *ParseError of that kind regardless of its token.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func unknownCommand(tok Token) error { return &ParseError{Kind: ErrUnknownCommand, Token: tok.Text} }
func unexpectedToken(tok Token) error {
	return &ParseError{Kind: ErrUnexpectedToken, Token: tok.Text}
}
func expectedNumber(tok Token) error {
	return &ParseError{Kind: ErrExpectedNumber, Token: tok.Text}
}
func expectedPositiveNumber(tok Token) error {
	return &ParseError{Kind: ErrExpectedPositiveNumber, Token: tok.Text}
}
func unexpectedProxy(tok Token) error {
	return &ParseError{Kind: ErrUnexpectedProxy, Token: tok.Text}
}
func unexpectedAdmin(tok Token) error {
	return &ParseError{Kind: ErrUnexpectedAdmin, Token: tok.Text}
}

var errUnfinishedCommand = &ParseError{Kind: ErrUnfinishedCommand}
