package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalid = errors.New("invalid")

	// post-level failures; a post hitting one of these is dropped, never fatal
	ErrMissingDate = errors.New("missing date")
	ErrInvalidDate = errors.New("unparseable date")
	ErrFrontMatter = errors.New("invalid front matter")
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// PostError ties a post-level failure to the source file that caused it.
type PostError struct {
	Path string
	Err  error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

func NewPostError(path string, err error) *PostError {
	return &PostError{Path: path, Err: err}
}
