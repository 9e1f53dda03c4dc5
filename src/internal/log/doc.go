// Package log provides simple leveled logging for mergehosts.
//
// The verbosity levels mirror the -v flag count:
//
//   - 0 ERROR: fatal problems only
//   - 1 WARN: duplicate hosts and other recoverable issues
//   - 2 INFO: progress of the merge phases
//   - 3 VERBOSE: argument values and per-file details
//
// # Example Usage
//
//	logger := log.New(os.Stdout, os.Stderr, log.LevelFromVerbosity(verbosity))
//	logger.Infof("Adding %s...", "Local Hosts")
//	logger.Warnf("Duplicate host '%s' (from %s)", host, "untrusted")
//
// Errors are always printed and always go to the error stream. Commands that
// write their result to stdout call SetForceStdErr(true) so logs do not mix
// with the result.
package log
