// Package cli provides the interactive Kanbord command-line client.
//
// It wires configuration, the local session store, the API services, and a
// REPL that renders the board in the terminal. Typical flow: restore the
// saved session (or log in), then run board and note commands.
//
// Key features:
//   - register / login / logout / me
//   - board: every note grouped into the four columns
//   - list with category, priority, completion and page filters
//   - add / edit / move / done / delete / show
//   - export: server-side snapshot downloaded to a local file
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
