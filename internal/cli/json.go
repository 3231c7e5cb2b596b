package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonOutput is set by --json.
var jsonOutput bool

// Response is the envelope every command prints under --json.
type Response struct {
	OK       bool       `json:"ok"`
	Data     any        `json:"data,omitempty"`
	Error    *ErrorInfo `json:"error,omitempty"`
	Warnings []Warning  `json:"warnings,omitempty"`
	Meta     *Meta      `json:"meta,omitempty"`
}

// ErrorInfo describes a failed command. Code is one of the Err* constants.
type ErrorInfo struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is a non-fatal condition attached to a successful response.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries counts about Data.
type Meta struct {
	Count int `json:"count,omitempty"`
}

func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func outputSuccess(data any, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data any, warnings []Warning, meta *Meta) {
	outputJSON(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message string, details any, suggestion string) {
	outputJSON(Response{OK: false, Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}})
}

func isJSONOutput() bool {
	return jsonOutput
}

// handleError reports err under code. With --json the envelope is printed
// and nil returned so cobra stays quiet; otherwise err is returned with the
// suggestion appended.
func handleError(code string, err error, suggestion string) error {
	return handleErrorWithDetails(code, err, suggestion, nil)
}

// handleErrorWithDetails is handleError with structured details for the
// JSON envelope. Text mode ignores details.
func handleErrorWithDetails(code string, err error, suggestion string, details any) error {
	if jsonOutput {
		outputError(code, err.Error(), details, suggestion)
		return nil
	}
	if suggestion != "" {
		return fmt.Errorf("%w\n\n%s", err, suggestion)
	}
	return err
}
