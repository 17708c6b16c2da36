// Package prompt provides interactive terminal prompts.
//
// Prompts render on stderr so stdout stays free for the selected value.
//
// Available prompts:
//   - [Select]: single selection from a filterable list
package prompt
