// Package sentinel provides a string-backed error type so sentinel errors can
// be declared as constants.
//
// A const error cannot be reassigned by importers, and because the type is
// comparable, errors.Is matches it through any chain of %w wrapping.
package sentinel
