// Package fileutil provides the directory and file-copy primitives used to
// provision reference files: directory creation with a fixed mode and a copy
// that can be made atomic with respect to concurrent readers.
package fileutil
