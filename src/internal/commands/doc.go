// Package commands implements CLI command handlers for mergehosts.
//
// Each command implements the Runner interface:
//   - Init(): Parse arguments, build and validate configuration
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - merge: merge the sources into the destination file (default)
//   - check: validate configuration and sources, print a per-source summary
//   - download: download the external hosts list from external.url
//   - serve: serve the merged document over HTTP
//
// # Example Usage
//
//	cmd := commands.CreateMergeCommand()
//	ctx := &commands.AppContext{ConfigPath: "/etc/mergehosts.toml"}
//	if err := cmd.Init(args, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
