package favorites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magnuspl/navnetips/internal/ports"
)

// PayloadVersion is the schema version written by Encode.
const PayloadVersion = 1

// Entry is one liked name. Kind is empty for entries migrated from the
// unversioned flat array; such a legacy entry matches the name under
// every kind.
type Entry struct {
	Kind ports.Kind `json:"kind,omitempty"`
	Name string     `json:"name"`
}

// Legacy reports whether e predates kind-scoped favorites.
func (e Entry) Legacy() bool { return e.Kind == "" }

// payload is the persisted v1 document:
//
//	{"version":1,"favorites":[{"kind":"dog","name":"Luna"}]}
type payload struct {
	Version   int     `json:"version"`
	Favorites []Entry `json:"favorites"`
}

// Decode parses a persisted favorites payload. Empty input is an empty
// set. A bare JSON string array is version 0: each name becomes a legacy
// entry; an object without a version field reads like version 1. Blank names are skipped and duplicates (same kind, same folded
// name) keep their first occurrence.
func Decode(data []byte) ([]Entry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Entry{}, nil
	}

	var raw []Entry
	if data[0] == '[' {
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return nil, fmt.Errorf("decode v0 favorites: %w", err)
		}
		raw = make([]Entry, 0, len(names))
		for _, n := range names {
			raw = append(raw, Entry{Name: n})
		}
	} else {
		var p payload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode favorites: %w", err)
		}
		if p.Version < 0 || p.Version > PayloadVersion {
			return nil, fmt.Errorf("decode favorites: unsupported version %d", p.Version)
		}
		raw = p.Favorites
	}

	out := make([]Entry, 0, len(raw))
	seen := make(map[entryKey]bool, len(raw))
	for _, e := range raw {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			continue
		}
		if !e.Legacy() && !e.Kind.Valid() {
			return nil, fmt.Errorf("decode favorites: unknown kind %q", e.Kind)
		}
		k := keyOf(e.Kind, e.Name)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out, nil
}

// Encode serializes entries as a v1 payload.
func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(payload{Version: PayloadVersion, Favorites: entries})
}

// entryKey is the identity of a favorite: kind plus case-folded name.
type entryKey struct {
	kind ports.Kind
	name string
}

func keyOf(kind ports.Kind, name string) entryKey {
	return entryKey{kind: kind, name: ports.Fold(strings.TrimSpace(name))}
}
