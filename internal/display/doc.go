// Package display provides the surfaces a shell session renders to: a plain
// line-oriented writer for pipes and scripts, and an interactive terminal
// with a scrolling transcript above an input line.
package display
