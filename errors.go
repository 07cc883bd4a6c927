/*
Copyright © 2013 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package harp

import "fmt"

// ErrorKind enumerates the error taxonomy that every fallible operation in
// this package and its collaborator packages reports through. It replaces
// the process-wide last-error-code channel of the system this package was
// modeled on with per-call result values.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrOutOfMemory
	ErrFileNotFound
	ErrFileOpen
	ErrFileClose
	ErrFileRead
	ErrFileWrite
	ErrInvalidArgument
	ErrInvalidIndex
	ErrInvalidName
	ErrInvalidFormat
	ErrInvalidDatetime
	ErrInvalidType
	ErrArrayRankMismatch
	ErrArrayOutOfBounds
	ErrVariableNotFound
	ErrUnitConversion
	ErrProduct
	ErrIngestion
	ErrIngestionOptionSyntax
	ErrInvalidIngestionOption
	ErrInvalidIngestionOptionValue
	ErrNoData
	ErrUnsupportedProduct
	ErrImport
	ErrCSVParse
)

var errorKindStrings = map[ErrorKind]string{
	ErrUnknown:                     "unknown error",
	ErrOutOfMemory:                 "out of memory",
	ErrFileNotFound:                "file not found",
	ErrFileOpen:                    "error opening file",
	ErrFileClose:                   "error closing file",
	ErrFileRead:                    "error reading file",
	ErrFileWrite:                   "error writing file",
	ErrInvalidArgument:             "invalid argument",
	ErrInvalidIndex:                "invalid index",
	ErrInvalidName:                 "invalid name",
	ErrInvalidFormat:               "invalid format",
	ErrInvalidDatetime:             "invalid date/time",
	ErrInvalidType:                 "invalid type",
	ErrArrayRankMismatch:           "array rank mismatch",
	ErrArrayOutOfBounds:            "array index out of bounds",
	ErrVariableNotFound:            "variable not found",
	ErrUnitConversion:              "unit conversion error",
	ErrProduct:                     "product error",
	ErrIngestion:                   "ingestion error",
	ErrIngestionOptionSyntax:       "ingestion option syntax error",
	ErrInvalidIngestionOption:      "invalid ingestion option",
	ErrInvalidIngestionOptionValue: "invalid ingestion option value",
	ErrNoData:                      "no data",
	ErrUnsupportedProduct:          "unsupported product",
	ErrImport:                      "import error",
	ErrCSVParse:                    "CSV parse error",
}

func (k ErrorKind) String() string {
	if s, ok := errorKindStrings[k]; ok {
		return s
	}
	return errorKindStrings[ErrUnknown]
}

// Error is the result value every fallible operation in this package
// returns on failure. Path is an optional annotation (a variable name, a
// file path) attached by the layer that detected the problem; Cause lets
// callers unwrap to an earlier Error with errors.Unwrap/errors.As.
type Error struct {
	Kind    ErrorKind
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg = e.Message
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an Error with no annotation and no cause.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Annotate wraps err (which may itself be an *Error) under kind, attaching
// path (a variable name, a file path).
func Annotate(kind ErrorKind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Cause: err}
}

// Wrapf wraps err under kind with a formatted message, preserving err as
// Cause so callers can still errors.As/errors.Is down to it. Used by the
// resolver to append a "could not derive variable X" annotation without
// losing the inner cause.
func Wrapf(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the ErrorKind of err if it is, or wraps, an *Error, and
// ErrUnknown otherwise.
func KindOf(err error) ErrorKind {
	var e *Error
	for err != nil {
		if he, ok := err.(*Error); ok {
			e = he
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return ErrUnknown
	}
	return e.Kind
}
