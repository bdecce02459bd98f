// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Output goes to stderr by default so command output on stdout stays clean.
//
// Components accept a *Logger and fall back to a no-op logger when given nil:
//
//	log := logging.OrNop(l).Component("filestore")
//	log.Info("file written", logging.Op("write"), logging.File("a.txt"))
package logging
