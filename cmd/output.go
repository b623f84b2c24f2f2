package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/validate"
)

// Exit codes.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // a design ran and does not pass
	ExitCommandError = 2 // bad input, configuration or usage
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a command to the process exit code.
// Errors that are not an ExitError come from cobra itself (unknown flags,
// bad arguments) and count as usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// response is the JSON envelope of every command.
type response struct {
	Status string         `json:"status"` // "ok" or "error"
	Data   any            `json:"data,omitempty"`
	Error  *responseError `json:"error,omitempty"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// fail reports err in the configured format and returns it as an
// ExitError with the command error code.
func fail(w io.Writer, format, message string, err error) error {
	exit := &ExitError{Code: ExitCommandError, Message: message, Err: err}

	var errs validate.Errors
	var cfgErr *code.ConfigurationError
	kind, details := "COMMAND", any(nil)
	switch {
	case errors.As(err, &errs):
		kind, details = "VALIDATION", errs
	case errors.As(err, &cfgErr):
		kind, details = "CONFIGURATION", cfgErr.Supported
	}

	if format == "json" {
		if werr := writeJSON(w, response{
			Status: "error",
			Error:  &responseError{Code: kind, Message: exit.Error(), Details: details},
		}); werr != nil {
			return werr
		}
		return exit
	}

	if errs != nil {
		fmt.Fprintf(w, "\n%s:\n", strings.ToUpper(message))
		for _, e := range errs {
			fmt.Fprintf(w, "  • %s\n", e.Error())
		}
		fmt.Fprintln(w)
		return &ExitError{Code: ExitCommandError, Message: fmt.Sprintf("%s (%d field(s))", message, len(errs))}
	}
	return exit
}

var printer = message.NewPrinter(language.English)

// num formats with thousands separators.
func num(v float64, decimals int) string {
	return printer.Sprintf("%."+strconv.Itoa(decimals)+"f", v)
}

const (
	ruleHeavy = "═══════════════════════════════════════════════════════════════"
	ruleLight = "───────────────────────────────────────────────────────────────"
)

func heading(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, ruleHeavy)
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, ruleHeavy)
	fmt.Fprintln(w)
}

func subheading(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, ruleLight)
}
