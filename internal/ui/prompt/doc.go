// Package prompt provides interactive prompts and the Prompter abstraction
// hooks use to ask for required variables.
//
// Available prompts:
//   - [Confirm]: yes/no question with a default
//   - [TextInput]: Single-line text input, optionally masked
//   - [Select]: Single selection from a list
//
// Prompter implementations:
//   - [TUI]: bubbletea text input, used when attached to a terminal
//   - [Line]: plain line reader, used for pipes and dumb terminals
//   - [Scripted]: fixed answers, for tests and --set style overrides
//   - [Disabled]: refuses to prompt
package prompt
