package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Scan  ScanCmd  `cmd:"" help:"Tokenize a markdown input file and dump the inline token stream."`
	Watch WatchCmd `cmd:"" help:"Watch a markdown file and rescan incrementally on every change."`
	Serve ServeCmd `cmd:"" help:"Start the token playground web server."`
	State StateCmd `cmd:"" help:"Decode a serialized scanner state record."`
}
