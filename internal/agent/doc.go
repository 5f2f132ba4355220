// Package agent wraps a language-model provider behind a single Run call.
//
// A model is named "provider:model", for example "openai:gpt-4o-mini" or
// "anthropic:claude-3-5-haiku-latest". Credentials are passed explicitly;
// the package never reads the process environment.
package agent
