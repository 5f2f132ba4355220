// Package controller sequences the handling of one query: load context,
// plan, run tools, respond and remember. Each stage is an interface so a
// strategy is just a choice of stage implementations.
//
// Two strategies are built in. "direct" sends the query straight to the
// agent. "tool-augmented" fetches every URL in the query first and hands
// the page contents to the agent alongside the question.
package controller
