package refsync

import (
	"fmt"
	"strings"
)

// CheckVersion reports whether the library version actually loaded (actual)
// matches the version the caller was prepared for (expected). A match means
// actual starts with expected, so "3.9" accepts "3.9.2" but not "3.10.0".
// An empty expected accepts anything.
//
// The returned error wraps ErrVersionMismatch.
func CheckVersion(expected, actual string) error {
	expected = strings.TrimSpace(expected)
	actual = strings.TrimSpace(actual)

	if strings.HasPrefix(actual, expected) {
		return nil
	}
	return fmt.Errorf("%w: prepared for version %s but library version is %s",
		ErrVersionMismatch, expected, actual)
}
