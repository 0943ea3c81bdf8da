// Package testutil provides shared test utilities and position fixtures for
// the rules engine packages.
package testutil

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AssertEqual reports a cmp.Diff of want and got when they differ.
func AssertEqual(t testing.TB, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		report(t, fmt.Sprintf("mismatch (-want +got):\n%s", diff), msgAndArgs...)
	}
}

// AssertSameElements compares two string lists ignoring order, e.g. legal
// move sets produced by different generators.
func AssertSameElements(t testing.TB, got, want []string, msgAndArgs ...interface{}) {
	t.Helper()
	less := func(a, b string) bool { return a < b }
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less), cmpopts.EquateEmpty()); diff != "" {
		report(t, fmt.Sprintf("set mismatch (-want +got):\n%s", diff), msgAndArgs...)
	}
}

// AssertNoError fails if err is not nil.
func AssertNoError(t testing.TB, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		report(t, fmt.Sprintf("unexpected error: %v", err), msgAndArgs...)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		report(t, fmt.Sprintf("error %v does not match %v", err, target), msgAndArgs...)
	}
}

// AssertContains fails if substr is not found in got.
func AssertContains(t testing.TB, got, substr string, msgAndArgs ...interface{}) {
	t.Helper()
	if !strings.Contains(got, substr) {
		report(t, fmt.Sprintf("%q does not contain %q", got, substr), msgAndArgs...)
	}
}

// AssertTrue fails if condition is false.
func AssertTrue(t testing.TB, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		report(t, "expected true but got false", msgAndArgs...)
	}
}

func report(t testing.TB, failure string, msgAndArgs ...interface{}) {
	t.Helper()
	if msg := formatMessage(msgAndArgs...); msg != "" {
		t.Errorf("%s: %s", msg, failure)
		return
	}
	t.Error(failure)
}

// formatMessage renders the optional message: a format string with its
// arguments, or a single value.
func formatMessage(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
		return fmt.Sprintf(format, msgAndArgs[1:]...)
	}
	return fmt.Sprint(msgAndArgs[0])
}
