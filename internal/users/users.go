// Package users resolves UIDs to names against the system's user database,
// caching each UID's name after its first lookup, to render UIDs as names
// in per-user reports. It does not load the whole database up front.
package users

import (
	"fmt"
	"os/user"
	"strconv"
	"sync"
)

// Table is a UID→name snapshot populated lazily from the system's user
// database (getpwent via os/user). There is no third-party alternative to
// os/user in the retrieved corpus for this lookup (see DESIGN.md); this is
// the one ambient concern duacc implements directly on the standard
// library rather than an ecosystem package.
type Table struct {
	mu    sync.Mutex
	names map[uint32]string
}

// NewTable returns an empty, lazily-populated Table.
func NewTable() *Table {
	return &Table{names: make(map[uint32]string)}
}

// Name resolves uid to a user name, looking it up and caching on first
// use. Missing or unresolvable UIDs render as "unknown(<id>)".
func (t *Table) Name(uid uint32) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if name, ok := t.names[uid]; ok {
		return name
	}

	name := lookup(uid)
	t.names[uid] = name

	return name
}

func lookup(uid uint32) string {
	u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil || u.Username == "" {
		return fmt.Sprintf("unknown(%d)", uid)
	}

	return u.Username
}
