// Package errors defines the error values returned by stakx.
//
// Every error inherits from [Err], so callers can test for any stakx failure
// with errors.Is(err, errors.Err) and for specific failures with the more
// specific sentinels below.
package errors

import "fmt"

var (
	// Base error; every error in stakx inherits from this
	Err = fmt.Errorf("stakx error")

	// Format and system errors
	ErrDecode          = fmt.Errorf("decoding error (%w)", Err)
	ErrEncode          = fmt.Errorf("encoding error (%w)", Err)
	ErrInvalidType     = fmt.Errorf("invalid type (%w)", Err)
	ErrMissingFile     = fmt.Errorf("missing file (%w)", Err)
	ErrUnknownFormat   = fmt.Errorf("unknown format (%w)", Err)
	ErrInvalidConfig   = fmt.Errorf("invalid configuration (%w)", Err)
	ErrOutputFile      = fmt.Errorf("error writing output file (%w)", Err)
	ErrInvalidFilename = fmt.Errorf("invalid filename (%w)", Err)

	// Base front matter error
	ErrFrontMatter = fmt.Errorf("front matter error (%w)", Err)

	// Specific front matter errors
	ErrUndefinedVariable           = fmt.Errorf("undefined variable (%w)", ErrFrontMatter)
	ErrUnsupportedVariableType     = fmt.Errorf("unsupported variable type (%w)", ErrFrontMatter)
	ErrUnsupportedExpansion        = fmt.Errorf("unsupported value expansion (%w)", ErrFrontMatter)
	ErrInvalidFrontMatterStructure = fmt.Errorf("front matter is not a mapping (%w)", ErrFrontMatter)
	ErrMissingClosingDelimiter     = fmt.Errorf("front matter closing delimiter missing (%w)", ErrFrontMatter)

	// Permalink and routing errors
	ErrPermalinkNotExpanded = fmt.Errorf("permalink has unresolved expansion (%w)", Err)
	ErrRouteCollision       = fmt.Errorf("route claimed by multiple documents (%w)", Err)
	ErrUnknownCollection    = fmt.Errorf("unknown collection (%w)", Err)
)

// UndefinedVariableError reports a variable reference with no value in
// either the front matter or the complex variable scope.
type UndefinedVariableError struct {
	Name string
	Key  string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("%s: %%%s: %s", e.Key, e.Name, ErrUndefinedVariable)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// UnsupportedVariableTypeError reports a variable whose value cannot be
// substituted into a string in the current context.
type UnsupportedVariableTypeError struct {
	Name string
	Key  string
	Type string
}

func (e *UnsupportedVariableTypeError) Error() string {
	return fmt.Sprintf("%s: %%%s is %s: %s", e.Key, e.Name, e.Type, ErrUnsupportedVariableType)
}

func (e *UnsupportedVariableTypeError) Unwrap() error {
	return ErrUnsupportedVariableType
}

// UnsupportedExpansionError reports an expansion source that is not a flat
// list of scalars.
type UnsupportedExpansionError struct {
	Name string
	Key  string
}

func (e *UnsupportedExpansionError) Error() string {
	return fmt.Sprintf("%s: %%%s: multidimensional value: %s", e.Key, e.Name, ErrUnsupportedExpansion)
}

func (e *UnsupportedExpansionError) Unwrap() error {
	return ErrUnsupportedExpansion
}

// FileError attaches the relative path of the offending document.
type FileError struct {
	Path string
	Err  error
}

// WithFile wraps err with the document path, leaving nil untouched.
func WithFile(path string, err error) error {
	if err == nil {
		return nil
	}

	return &FileError{
		Path: path,
		Err:  err,
	}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
