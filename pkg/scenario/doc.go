// Package scenario replays scripted cache operations and records the
// recency order after every step.
//
// Scripts are YAML documents:
//
//	name: eviction
//	capacity: 2
//	steps:
//	  - {op: put, key: a, value: A}
//	  - {op: put, key: b, value: B}
//	  - {op: get, key: a}
//	  - {op: put, key: c, value: C}   # evicts b
//
// Supported operations are put, get, peek and remove. Default returns a
// built-in script demonstrating access-ordered eviction.
package scenario
