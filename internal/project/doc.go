// Package project opens a generated project directory and wires its
// runtime: logger, agent, memory store, tools, controller and chat service.
package project
