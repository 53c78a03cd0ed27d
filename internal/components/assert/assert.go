// Package assert panics on violated invariants, it is for programmer errors
// and never for bad input from the site.
package assert

import "fmt"

func fail(format string, args ...any) {
	panic(fmt.Sprintf("assert: "+format, args...))
}

func NotNil(value any) {
	if value == nil {
		fail("expected a non-nil value")
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		fail("expected a non-empty string")
	}
}

func True(cond bool, message string) {
	if !cond {
		fail("%s", message)
	}
}
