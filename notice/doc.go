// Package notice is intentionally small: a Notice, its ordered Context,
// a Container that accumulates and sorts them, and the code registry
// backing the library's NoticeSchema() entry point. Nothing in here
// knows about feeds or validators.
package notice
