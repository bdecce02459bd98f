// Package memory provides sinks that receive ingested chunks.
//
// Buffer keeps records in process memory. FileSink appends one JSON
// record per chunk to a JSONL file so an external indexer can pick
// them up later.
package memory
