// Package assert provides the assertions used inside registered test bodies.
//
// A failed assertion aborts the rest of the test body by panicking with an
// *AssertionFailure. The runner recovers it at the boundary of the test and
// records the test as failed; nothing inside the test body is expected to
// recover it. When the test source is available the failure description is
// the literal expression passed to the assertion, e.g. "len(users) == 3".
package assert

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"

	"microtest/internal/source"
)

// AssertionFailure is raised when an assertion condition does not hold.
type AssertionFailure struct {
	Description string // Failed expression or explicit message
	Detail      string // Optional diagnostic, e.g. the actual values
}

func (f *AssertionFailure) Error() string {
	return f.Description
}

// check raises an AssertionFailure when cond is false. describe only runs on
// failure and receives the source text of the arguments at the call site of
// the exported assertion, or nil if it could not be recovered.
func check(cond bool, names []string, minArgs int, describe func(args []string) (string, string)) {
	if cond {
		return
	}
	// CallArgs <- check <- exported assertion <- test body
	args, _ := source.CallArgs(2, minArgs, names...)
	description, detail := describe(args)
	panic(&AssertionFailure{Description: description, Detail: detail})
}

// True aborts the test when cond is false. The description is the optional
// message, formatted like fmt.Sprintf when more than one value is given, or
// the source text of cond.
func True(cond bool, msgAndArgs ...any) {
	check(cond, []string{"True", "That"}, 1, func(args []string) (string, string) {
		return message(msgAndArgs, arg(args, 0, "condition")), ""
	})
}

// That is an alias of True.
var That = True

// False aborts the test when cond is true.
func False(cond bool, msgAndArgs ...any) {
	check(!cond, []string{"False"}, 1, func(args []string) (string, string) {
		return message(msgAndArgs, negate(arg(args, 0, "condition"))), ""
	})
}

// Nil aborts the test unless v is nil. Typed nil pointers, maps, slices,
// channels, functions and interfaces count as nil.
func Nil(v any, msgAndArgs ...any) {
	check(isNil(v), []string{"Nil"}, 1, func(args []string) (string, string) {
		return message(msgAndArgs, arg(args, 0, fmt.Sprint(v))+" == nil"), ""
	})
}

// NotNil aborts the test when v is nil.
func NotNil(v any, msgAndArgs ...any) {
	check(!isNil(v), []string{"NotNil"}, 1, func(args []string) (string, string) {
		return message(msgAndArgs, arg(args, 0, "value")+" != nil"), ""
	})
}

// Equal aborts the test unless a and b are deeply equal. Unexported struct
// fields are compared too.
func Equal[T any](a, b T) {
	check(cmp.Equal(a, b, cmpOptions...), []string{"Equal"}, 2, func(args []string) (string, string) {
		description := arg(args, 0, fmt.Sprint(a)) + " == " + arg(args, 1, fmt.Sprint(b))
		detail := fmt.Sprintf("Actual values: %v != %v", a, b)
		if composite(a) {
			detail += "\n" + strings.TrimRight(cmp.Diff(a, b, cmpOptions...), "\n")
		}
		return description, detail
	})
}

// StringEqual aborts the test unless the text forms of a and b are equal.
// Strings, byte slices, errors and fmt.Stringers use their text; anything
// else is formatted with fmt.Sprint.
func StringEqual(a, b any) {
	ta, tb := text(a), text(b)
	check(ta == tb, []string{"StringEqual"}, 2, func(args []string) (string, string) {
		description := arg(args, 0, fmt.Sprintf("%q", ta)) + " == " + arg(args, 1, fmt.Sprintf("%q", tb))
		return description, fmt.Sprintf("Actual values: %q != %q", ta, tb)
	})
}

// Fail aborts the test unconditionally.
func Fail(msgAndArgs ...any) {
	panic(&AssertionFailure{Description: message(msgAndArgs, "failed")})
}

var cmpOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

func message(msgAndArgs []any, fallback string) string {
	switch {
	case len(msgAndArgs) == 0:
		return fallback
	case len(msgAndArgs) > 1:
		if format, ok := msgAndArgs[0].(string); ok {
			return fmt.Sprintf(format, msgAndArgs[1:]...)
		}
	}
	return fmt.Sprint(msgAndArgs...)
}

func arg(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}

func negate(expr string) string {
	if strings.ContainsAny(expr, " ()+-*/%<>=!&|^") {
		return "!(" + expr + ")"
	}
	return "!" + expr
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func composite(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer:
		return true
	}
	return false
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
