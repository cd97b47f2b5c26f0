// Package tqerrors defines the setup-error type used at the CLI boundary
// (category 1 of the error taxonomy: unreadable grammar file, malformed
// grammar syntax, bad flag combination). Unlike grammar warnings and table
// conflicts, which are collected as diag.Record values and reported without
// stopping, a setup error returned from the run terminates it with a nonzero
// exit code. Inside the REPL, a setup error for one input line is printed
// and the session continues.
package tqerrors

import "fmt"

// setupError is an error caused by something wrong in the run's
// configuration rather than in the grammar or input being processed. It
// carries a human-readable message for the operator as well as a more
// technical message suitable for logs.
type setupError struct {
	msg   string
	human string
	wrap  error
}

func (e *setupError) Error() string {
	return e.msg
}

// OperatorMessage returns the message that should be shown to whoever is
// running the CLI.
func (e *setupError) OperatorMessage() string {
	return e.human
}

// Unwrap gives the error that the setupError wraps, if it wraps one.
func (e *setupError) Unwrap() error {
	return e.wrap
}

// Setup returns a new setup error with both an operator-facing message and a
// technical description.
func Setup(operator, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got setupError(%q)", operator)
	}
	return &setupError{
		msg:   technical,
		human: operator,
	}
}

// Setupf returns a new setup error with a message to show the operator and
// an automatically generated Error() description.
func Setupf(operatorFormat string, a ...interface{}) error {
	operatorMessage := fmt.Sprintf(operatorFormat, a...)
	return Setup(operatorMessage, "")
}

// WrapSetup returns a new setup error with both an operator-facing message
// and a technical description, wrapping the given error.
func WrapSetup(e error, operator, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got setupError(%q)", operator)
	}
	return &setupError{
		msg:   technical,
		human: operator,
		wrap:  e,
	}
}

// WrapSetupf returns a new setup error with both an operator-facing message
// and an automatically generated Error() description, wrapping the given
// error.
func WrapSetupf(e error, operatorFormat string, a ...interface{}) error {
	operatorMessage := fmt.Sprintf(operatorFormat, a...)
	return WrapSetup(e, operatorMessage, "")
}

// OperatorMessage gets the message to display at the CLI boundary for err.
// If err is a setup error its operator-facing message is returned;
// otherwise err.Error() is returned.
func OperatorMessage(err error) string {
	if se, ok := err.(*setupError); ok {
		return se.OperatorMessage()
	}
	return err.Error()
}
