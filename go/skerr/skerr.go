// Package skerr provides errors that carry the call stack of the place they
// were created or wrapped, plus any context added along the way.
package skerr

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

const maxStackDepth = 5

// StackTrace is a single frame of a call stack.
type StackTrace struct {
	File string
	Line int
}

func (st *StackTrace) String() string {
	return fmt.Sprintf("%s:%d", st.File, st.Line)
}

// CallStack returns at most height frames of the current call stack, skipping
// the first startAt frames above the caller of CallStack.
func CallStack(height, startAt int) []StackTrace {
	stack := []StackTrace{}
	for i := 0; i < height; i++ {
		_, file, line, ok := runtime.Caller(startAt + 1 + i)
		if !ok {
			break
		}
		stack = append(stack, StackTrace{
			File: filepath.Join(filepath.Base(filepath.Dir(file)), filepath.Base(file)),
			Line: line,
		})
	}
	return stack
}

// ErrorWithContext wraps an error with the call stack where it was first wrapped
// and any additional context supplied by Wrapf.
type ErrorWithContext struct {
	Wrapped   error
	CallStack []StackTrace
	Context   []string
}

// Error implements the error interface.
func (e *ErrorWithContext) Error() string {
	var b strings.Builder
	for i := len(e.Context) - 1; i >= 0; i-- {
		b.WriteString(e.Context[i])
		b.WriteString(": ")
	}
	b.WriteString(e.Wrapped.Error())
	if len(e.CallStack) > 0 {
		b.WriteString(". At")
		for _, st := range e.CallStack {
			b.WriteString(" ")
			b.WriteString(st.String())
		}
	}
	return b.String()
}

// Unwrap lets errors.Is and errors.As see the wrapped error.
func (e *ErrorWithContext) Unwrap() error {
	return e.Wrapped
}

// Wrap adds the caller's stack to err. Wrapping an error that already carries a
// stack is a no-op. Wrap(nil) returns nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var ewc *ErrorWithContext
	if errors.As(err, &ewc) {
		return err
	}
	return &ErrorWithContext{
		Wrapped:   err,
		CallStack: CallStack(maxStackDepth, 1),
	}
}

// Wrapf is like Wrap but also records a formatted context message that is
// prepended to the error text.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	if ewc, ok := err.(*ErrorWithContext); ok {
		ctx := make([]string, len(ewc.Context), len(ewc.Context)+1)
		copy(ctx, ewc.Context)
		return &ErrorWithContext{
			Wrapped:   ewc.Wrapped,
			CallStack: ewc.CallStack,
			Context:   append(ctx, msg),
		}
	}
	return &ErrorWithContext{
		Wrapped:   err,
		CallStack: CallStack(maxStackDepth, 1),
		Context:   []string{msg},
	}
}

// Fmt is fmt.Errorf with the caller's stack attached.
func Fmt(format string, args ...interface{}) error {
	return &ErrorWithContext{
		Wrapped:   fmt.Errorf(format, args...),
		CallStack: CallStack(maxStackDepth, 1),
	}
}

// Unwrap returns the innermost error that is not an *ErrorWithContext.
func Unwrap(err error) error {
	for {
		ewc, ok := err.(*ErrorWithContext)
		if !ok {
			return err
		}
		err = ewc.Wrapped
	}
}
