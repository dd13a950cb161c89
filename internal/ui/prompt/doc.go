// Package prompt asks the user short questions on the terminal.
//
// Prompts draw on stderr so that stdout stays free for the table.
package prompt
