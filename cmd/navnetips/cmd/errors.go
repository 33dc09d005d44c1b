package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/magnuspl/navnetips/internal/app"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when the bolt file is locked,
// telling a running `serve` apart from an unknown lock holder.
func diagnoseDBLock(p *app.Paths) string {
	if addr, ok := p.ServerAddr(); ok {
		pid := "?"
		if data, err := os.ReadFile(p.PIDFile); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
				pid = strconv.Itoa(n)
			}
		}
		return fmt.Sprintf("favorites database is locked by `navnetips serve` (pid %s, http://%s)\n"+
			"  → use the web UI, or stop the server first\n"+
			"  → or share favorites between processes:  NAVNETIPS_STORAGE=file", pid, addr)
	}

	return fmt.Sprintf("favorites database %s is locked by another process\n"+
		"  → find the process:  ps aux | grep navnetips\n"+
		"  → then retry your command", p.DB)
}
