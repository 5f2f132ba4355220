// Package paths resolves the on-disk locations expertkit works with: the
// agents root under the user's home directory, the project template, the
// projects directory, and the fixed layout of a generated project.
package paths
