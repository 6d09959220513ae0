// Package core provides the business logic for the order history lookup.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Data Errors (DATA001-DATA099)
//
// Errors related to locating and reading the source datasets:
//
//	DATA001 - Missing data files: One or more datasets could not be found
//	          Action: Names the expected files and the accepted formats
//	          Matched: *MissingDatasetError (errors.As), "dataset not found"
//
//	DATA002 - Ambiguous archive: A zip archive holds more than one file
//	          Action: Keep exactly one CSV or workbook inside each archive
//	          Patterns: "multiple files found in zip archive"
//
//	DATA003 - Unreadable archive: A zip archive is empty or corrupt
//	          Action: Re-create the archive from the original CSV
//	          Patterns: "zip archive"
//
//	DATA004 - Unknown dataset: The dataset is not configured
//	          Action: Check the dataset manifest for typos
//	          Patterns: "unknown dataset"
//
//	DATA005 - Database unavailable: The configured database could not be read
//	          Action: Check DATABASE_URL or remove it to read files only
//	          Patterns: "connect database", "connection refused"
//
//	DATA006 - Customer not found: No customer has the requested id
//	          Action: Search by name to find the customer id
//	          Patterns: "customer not found"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL002 - Invalid number: A money or quantity cell is not a number
//	         Action: Remove stray text from the numeric columns
//	         Patterns: "invalid number"
//
//	VAL004 - Missing column: Required column is missing from a dataset
//	         Action: Check that the id columns are present in your file
//	         Patterns: "missing required column"
//
// # File Errors (FILE001-FILE099)
//
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Action: Ensure file is comma-separated with consistent quoting
//	          Patterns: "invalid csv"
//
//	FILE003 - Invalid workbook: The .xlsx file could not be read
//	          Action: Re-save the workbook from Excel or export it as CSV
//	          Patterns: "invalid workbook"
//
//	FILE004 - Invalid compressed file: A .gz, .bz2 or .xz file is corrupt
//	          Action: Re-compress the original CSV
//	          Patterns: "decompress"
//
//	FILE005 - Empty file: A data file has no header row
//	          Action: Export the dataset again including the header
//	          Patterns: "empty file"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	REQ002 - Request timeout: Request timed out
//	         Action: Please try again
//	         Patterns: "context deadline exceeded", "timeout"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones. Typed errors are checked before any pattern.
package core

import (
	"errors"
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
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Data Errors (DATA001-DATA006)
	// =========================================================================
	{
		pattern: "dataset not found",
		msg: UserMessage{
			Message: "Data files not found",
			Action:  "Place the data files in the data directory as .csv or .zip",
			Code:    "DATA001",
		},
	},
	{
		pattern: "multiple files found in zip archive",
		msg: UserMessage{
			Message: "A zip archive holds more than one file",
			Action:  "Keep exactly one CSV or workbook inside each archive",
			Code:    "DATA002",
		},
	},
	{
		pattern: "zip archive",
		msg: UserMessage{
			Message: "A zip archive could not be read",
			Action:  "Re-create the archive from the original CSV",
			Code:    "DATA003",
		},
	},
	{
		pattern: "unknown dataset",
		msg: UserMessage{
			Message: "Unknown dataset",
			Action:  "Check the dataset manifest for typos",
			Code:    "DATA004",
		},
	},
	{
		pattern: "connect database",
		msg: UserMessage{
			Message: "The database could not be reached",
			Action:  "Check DATABASE_URL or unset it to read files only",
			Code:    "DATA005",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "The database could not be reached",
			Action:  "Check DATABASE_URL or unset it to read files only",
			Code:    "DATA005",
		},
	},
	{
		pattern: "customer not found",
		msg: UserMessage{
			Message: "Customer not found",
			Action:  "Search by name to find the customer id",
			Code:    "DATA006",
		},
	},

	// =========================================================================
	// Validation Errors (VAL002, VAL004)
	// =========================================================================
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove stray text from the quantity and price columns",
			Code:    "VAL002",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from a data file",
			Action:  "Check that the id columns are present in your file",
			Code:    "VAL004",
		},
	},

	// =========================================================================
	// File Errors (FILE002-FILE005)
	// =========================================================================
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid workbook",
		msg: UserMessage{
			Message: "Workbook could not be read",
			Action:  "Re-save the workbook from Excel or export it as CSV",
			Code:    "FILE003",
		},
	},
	{
		pattern: "decompress",
		msg: UserMessage{
			Message: "Compressed file could not be read",
			Action:  "Re-compress the original CSV",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "A data file is empty",
			Action:  "Export the dataset again including the header row",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
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
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
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
// A *MissingDatasetError yields DATA001 with the expected file names in the
// action. Otherwise known error patterns are searched (case-insensitive) and
// the first match is returned, falling back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var missing *MissingDatasetError
	if errors.As(err, &missing) {
		return UserMessage{
			Message: "Data files not found",
			Action:  missing.Instructions(),
			Code:    "DATA001",
		}
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

// IsUserFacing reports whether an error matches a known pattern rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}
