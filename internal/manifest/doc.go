// Package manifest handles parsing and validation of a generated project's
// configs/project.yaml. It validates against the embedded JSON Schema and
// checks that the template version is one this binary understands.
package manifest
