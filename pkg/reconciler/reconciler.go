// Package reconciler merges observations of a conference instance from
// several sources into one canonical deadline.
//
// Merging follows a fixed precedence: an empty, unset ("--") or TBA field is
// filled from the incoming record, an equal value is a no-op, and two
// different non-empty values are a conflict resolved by the configured
// Strategy. The default strategy keeps the existing value, so automated
// re-scraping never overwrites curated data without a reportable Event.
//
// Finalize collapses repeated ids and orders the result by effective
// deadline, with undated (TBA) entries last.
package reconciler
