// Package ingest splits workspace files into overlapping chunks and feeds
// them to an external memory sink.
//
// Windows are measured in characters (runes). Each window starts
// maxLength-overlap characters after the previous one, so consecutive
// chunks share exactly overlap characters and the union of all chunks
// covers the content with no gap. The last chunk may be shorter.
//
// An overlap of maxLength or more would never advance the window; Split
// rejects it with ErrInvalidConfiguration instead of looping.
//
// Example Usage:
//
//	ing := ingest.New(store, ingest.WithLogger(logger))
//	report, err := ing.Ingest("notes.txt", sink, 4000, 200)
//	// err is informational: report.Added chunks already reached the sink
package ingest
