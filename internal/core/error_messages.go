// Package core provides the lookup logic that derives a PROMOMODALIDAD code.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users report a problem they can quote the code for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Source not found: The equivalences workbook could not be found
//	         Action: Place equivalencias_promo_modalidad.xlsx under data/ or set SOURCE_URL
//	         Patterns: "source not found"
//
//	SRC002 - Unsupported source: The SOURCE_URL scheme is not recognised
//	         Action: Use an .xlsx path, csv://, postgres://, sqlite:// or s3://
//	         Patterns: "unsupported source"
//
//	SRC003 - Sheet not found: A required sheet or table is missing
//	         Action: The source needs promocion, modalidad and areas_paises
//	         Patterns: "sheet not found"
//
//	SRC004 - Reload in progress failed: The source could not be reloaded
//	         Action: The previous tables are still in use; check the server logs
//	         Patterns: "reload failed"
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Unknown platform: The platform has no selection rules
//	         Action: Pick LinkedIn, Google or Meta
//	         Patterns: "unknown platform"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Incomplete selection: No code has been built yet
//	         Action: Complete every selection before exporting
//	         Patterns: "incomplete selection"
//
//	EXP002 - Unknown format: The export format is not supported
//	         Action: Use format=json or format=yaml
//	         Patterns: "unknown export format"
//
// # Database Errors (DB004-DB006)
//
//	DB004 - Connection refused: Unable to connect to the table database
//	DB006 - Timeout: Loading the tables timed out
//
// # Request Errors (REQ001-REQ002) and Rate Limiting (RATE001)
//
//	REQ001 - Request cancelled    Patterns: "context canceled"
//	REQ002 - Request timeout      Patterns: "context deadline exceeded"
//	RATE001 - Too many requests   Patterns: "rate limit"
//
// # Auth Errors (AUTH001-AUTH002)
//
//	AUTH001 - Missing API key, AUTH002 - Invalid API key. Written directly by
//	          the admin middleware, never produced by MapError.
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// Patterns are matched case-insensitively using strings.Contains; the first
// matching pattern wins, so specific patterns come before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Source Errors (SRC001-SRC004)
	// =========================================================================
	{
		pattern: "source not found",
		msg: UserMessage{
			Message: "The equivalences workbook could not be found",
			Action:  "Place equivalencias_promo_modalidad.xlsx under data/ or set SOURCE_URL",
			Code:    "SRC001",
		},
	},
	{
		pattern: "unsupported source",
		msg: UserMessage{
			Message: "The table source type is not supported",
			Action:  "Use an .xlsx path, csv://, postgres://, sqlite:// or s3://",
			Code:    "SRC002",
		},
	},
	{
		pattern: "sheet not found",
		msg: UserMessage{
			Message: "A required sheet is missing from the source",
			Action:  "The source needs promocion, modalidad and areas_paises",
			Code:    "SRC003",
		},
	},
	{
		pattern: "reload failed",
		msg: UserMessage{
			Message: "The tables could not be reloaded",
			Action:  "The previous tables are still in use; check the server logs",
			Code:    "SRC004",
		},
	},

	// =========================================================================
	// Selection and Export Errors
	// =========================================================================
	{
		pattern: "unknown platform",
		msg: UserMessage{
			Message: "The platform has no selection rules",
			Action:  "Pick LinkedIn, Google or Meta",
			Code:    "SEL001",
		},
	},
	{
		pattern: "incomplete selection",
		msg: UserMessage{
			Message: "No code has been built for this selection",
			Action:  "Complete every selection before exporting",
			Code:    "EXP001",
		},
	},
	{
		pattern: "unknown export format",
		msg: UserMessage{
			Message: "The export format is not supported",
			Action:  "Use format=json or format=yaml",
			Code:    "EXP002",
		},
	},

	// =========================================================================
	// Database Errors (DB004, DB006)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the table database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Loading the tables timed out",
			Action:  "Check the source is reachable and try again",
			Code:    "DB006",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first case-insensitive pattern match, or ERR000.
//
// Example:
//
//	msg := MapError(fmt.Errorf("open data/x.xlsx: %w", ErrSourceNotFound))
//	// msg.Code == "SRC001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err into a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
