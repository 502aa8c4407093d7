// Package conferences defines the record types reconciled by confmap:
// curator-maintained masters, per-source candidates and rankings, and the
// canonical per-year Deadline, together with the ordered Record mapping used
// to move them to and from disk.
package conferences
