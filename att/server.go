//go:build !nogattserver
// +build !nogattserver

package att

// serverEnabled reports whether server-side attribute access is built in.
// Build with the nogattserver tag to remove it.
const serverEnabled = true
