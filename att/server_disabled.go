//go:build nogattserver
// +build nogattserver

package att

const serverEnabled = false
