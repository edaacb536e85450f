// Package errors wraps the standard library errors with slog annotations and
// caller information so that failures carry enough context to debug from logs.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// annotatedError decorates an error with slog attributes and the source
// location where the annotation happened.
type annotatedError struct {
	err         error
	msg         string
	annotations []slog.Attr
	source      string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves the file:line of the caller skipping the given number
// of frames on top of callerSource itself.
func callerSource(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 { //nolint:mnd // skip runtime.Callers and callerSource.
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.File == "" {
		return ""
	}
	file := frame.File
	if idx := strings.LastIndexByte(file, '/'); idx != -1 {
		file = file[idx+1:]
	}
	return fmt.Sprintf("%s:%d", file, frame.Line)
}

// New returns an error annotated with the caller's source location.
func New(msg string, annotations ...slog.Attr) error {
	return &annotatedError{
		err:         nil,
		msg:         msg,
		annotations: annotations,
		source:      callerSource(1),
	}
}

// NewSentinel returns a bare sentinel error without source information.
// Use it for package-level error values that are compared with Is.
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // sentinel constructor.
}

// Wrap annotates err with a message and optional slog attributes. The caller's
// source location is recorded for SlogError. Wrapping a nil error yields an
// error with only the message so that misuse stays visible in logs.
func Wrap(err error, msg string, annotations ...slog.Attr) error {
	return &annotatedError{
		err:         err,
		msg:         msg,
		annotations: annotations,
		source:      callerSource(1),
	}
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the panic site.
func DecoratePanic(recovered any) error {
	return &annotatedError{
		err:         nil,
		msg:         fmt.Sprintf("panic: %v", recovered),
		annotations: nil,
		source:      callerSource(1),
	}
}

// SlogError renders err as a structured "error" group containing the message,
// the innermost recorded source location, and all annotations collected from
// the chain of wrapped errors.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		annotations []slog.Attr
		source      string
	)
	for unwrapped := err; unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		var annotated *annotatedError
		if errors.As(unwrapped, &annotated) {
			annotations = append(annotations, annotated.annotations...)
			// The outermost annotation is closest to the failure handling,
			// record the first source we see.
			if source == "" {
				source = annotated.source
			}
			unwrapped = annotated
		}
	}

	attrs := []slog.Attr{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		anyAnnotations := make([]any, 0, len(annotations))
		for _, annotation := range annotations {
			anyAnnotations = append(anyAnnotations, annotation)
		}
		attrs = append(attrs, slog.Group("annotations", anyAnnotations...))
	}

	return slog.Group("error", asAnyList(attrs)...)
}

func asAnyList(attrs []slog.Attr) []any {
	list := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		list = append(list, attr)
	}
	return list
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target) //nolint:errorlint // passthrough.
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}
