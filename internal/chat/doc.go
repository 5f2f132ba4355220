// Package chat is the conversational front end of a generated project: a
// terminal REPL and a small web UI served with gin. Both keep per-session
// message history in memory and route queries through the controller.
package chat
