package models

import "fmt"

// ErrorKind classifies a check failure
type ErrorKind string

const (
	KindEmptySearchPath      ErrorKind = "empty_search_path"
	KindInvalidSearchPath    ErrorKind = "invalid_search_path"
	KindInvalidSearchPattern ErrorKind = "invalid_search_pattern"
	KindInsufficientFiles    ErrorKind = "insufficient_files"
	KindPathNotFound         ErrorKind = "path_not_found"
	KindRead                 ErrorKind = "read_error"
	KindParse                ErrorKind = "parse_error"
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrEmptySearchPath      = &CheckError{Kind: KindEmptySearchPath}
	ErrInvalidSearchPath    = &CheckError{Kind: KindInvalidSearchPath}
	ErrInvalidSearchPattern = &CheckError{Kind: KindInvalidSearchPattern}
	ErrInsufficientFiles    = &CheckError{Kind: KindInsufficientFiles}
	ErrPathNotFound         = &CheckError{Kind: KindPathNotFound}
	ErrRead                 = &CheckError{Kind: KindRead}
	ErrParse                = &CheckError{Kind: KindParse}
)

// CheckError is the error returned by file resolution and loading.
// Every CheckError is terminal for the current run.
type CheckError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e *CheckError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any
func (e *CheckError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a CheckError of the same kind
func (e *CheckError) Is(target error) bool {
	t, ok := target.(*CheckError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewEmptySearchPathError reports a blank search path
func NewEmptySearchPathError() *CheckError {
	return &CheckError{
		Kind:    KindEmptySearchPath,
		Message: "Search path can't be empty.",
	}
}

// NewInvalidSearchPathError reports a search path that is missing or not a directory
func NewInvalidSearchPathError(path string, cause error) *CheckError {
	return &CheckError{
		Kind:    KindInvalidSearchPath,
		Path:    path,
		Message: fmt.Sprintf("Invalid path '%s', path should exists and be a directory.", path),
		Err:     cause,
	}
}

// NewInvalidSearchPatternError reports a search pattern that does not compile
func NewInvalidSearchPatternError(pattern string, cause error) *CheckError {
	return &CheckError{
		Kind:    KindInvalidSearchPattern,
		Message: fmt.Sprintf("Invalid search pattern '%s'.", pattern),
		Err:     cause,
	}
}

// NewInsufficientFilesError reports fewer than two candidate files
func NewInsufficientFilesError() *CheckError {
	return &CheckError{
		Kind:    KindInsufficientFiles,
		Message: "You need at least 2 files to be compared.",
	}
}

// NewPathNotFoundError reports an explicitly listed file that does not exist
func NewPathNotFoundError(path string) *CheckError {
	return &CheckError{
		Kind:    KindPathNotFound,
		Path:    path,
		Message: fmt.Sprintf("File %s not found.", path),
	}
}

// NewReadError reports a resolved file that could not be read
func NewReadError(path string, cause error) *CheckError {
	return &CheckError{
		Kind:    KindRead,
		Path:    path,
		Message: fmt.Sprintf("Unable to read file %s.", path),
		Err:     cause,
	}
}

// NewParseError reports a file whose content is not a JSON object
func NewParseError(path string, reason string) *CheckError {
	return &CheckError{
		Kind:    KindParse,
		Path:    path,
		Message: fmt.Sprintf("File %s is not a valid JSON object: %s.", path, reason),
	}
}
