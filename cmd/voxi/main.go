// Package main provides the voxi CLI for working with query definition files.
//
// The CLI supports:
//   - render: Print the SQL for named queries, inline or with placeholders
//   - validate: Check that every definition builds and renders
//   - tables: List the tables each query reads from
//   - doctor: Check definitions against a live database without executing them
//
// Usage:
//
//	voxi [flags] <command>
//
// Only doctor talks to a database; every other command works on files.
package main

func main() {
	Execute()
}
