package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths under the data directory.
// All fields are pre-computed strings.
type Paths struct {
	Root  string // <data>/
	DB    string // <data>/favorites.db (bolt storage)
	KVDir string // <data>/kv/ (file storage)

	RunDir   string // <data>/run/
	PIDFile  string // <data>/run/serve.pid
	AddrFile string // <data>/run/http.addr
}

// NewPaths constructs all resolved paths from a data directory.
func NewPaths(dataDir string) *Paths {
	return &Paths{
		Root:  dataDir,
		DB:    filepath.Join(dataDir, "favorites.db"),
		KVDir: filepath.Join(dataDir, "kv"),

		RunDir:   filepath.Join(dataDir, "run"),
		PIDFile:  filepath.Join(dataDir, "run", "serve.pid"),
		AddrFile: filepath.Join(dataDir, "run", "http.addr"),
	}
}

// EnsureDirs creates the data directory and its subdirectories. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.KVDir, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// ServerAddr returns the address a running `serve` wrote to AddrFile.
func (p *Paths) ServerAddr() (string, bool) {
	data, err := os.ReadFile(p.AddrFile)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// CleanEphemeral removes ephemeral runtime files (PID file and address
// file). Called on clean server shutdown.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PIDFile)
	os.Remove(p.AddrFile)
}
