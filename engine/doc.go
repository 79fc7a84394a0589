// Package engine defines the contract of the workflow execution engine that
// parses tool descriptors and runs them.
package engine
