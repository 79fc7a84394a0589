// Package conv converts loosely typed tool arguments and results between
// maps, dynamic request records and protocol types.
package conv
