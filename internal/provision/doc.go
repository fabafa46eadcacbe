// Package provision keeps a single fresh copy of a reference file in a shared
// directory, safe against concurrent provisioning by independent processes.
//
// Ensure follows a double-checked pattern: an unsynchronized freshness check
// returns immediately when the copy is current, otherwise an exclusive
// advisory lock on "<dest dir>.lock" is taken, freshness is re-checked (a
// peer may have refreshed the copy while this caller waited), and only then
// is the file copied. A copy is fresh when it is not older than the source
// and has the same size.
package provision
