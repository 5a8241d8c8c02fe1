// Package entities contains core domain data structures.
package entities

import "fmt"

// AliasSlots is the fixed number of alternate names an Identity can hold.
const AliasSlots = 5

// Identity is a canonical roster entry: a person with a stable id and up to
// AliasSlots alternate names. Occupied slots are always packed at the front.
type Identity struct {
	ID      int                `json:"id"`
	Name    string             `json:"name"`
	Aliases [AliasSlots]string `json:"aliases"`
}

// Label returns the identity as shown in selection menus, e.g. "[07] Jane Doe".
func (i Identity) Label() string {
	return fmt.Sprintf("[%02d] %s", i.ID, i.Name)
}

// Matches reports whether name equals the canonical name or any non-empty alias.
func (i Identity) Matches(name string) bool {
	if name == i.Name {
		return true
	}
	for _, alias := range i.Aliases {
		if alias != "" && alias == name {
			return true
		}
	}
	return false
}

// AddAlias writes alias into the first empty slot. It returns false when
// every slot is already occupied.
func (i *Identity) AddAlias(alias string) bool {
	for slot := range i.Aliases {
		if i.Aliases[slot] == "" {
			i.Aliases[slot] = alias
			return true
		}
	}
	return false
}

// KnownAliases returns the non-empty alias slots in slot order.
func (i Identity) KnownAliases() []string {
	out := make([]string, 0, AliasSlots)
	for _, alias := range i.Aliases {
		if alias != "" {
			out = append(out, alias)
		}
	}
	return out
}

// Roster is the ordered identity table. Order is significant: matching and
// paging both follow it.
type Roster []Identity

// Clone returns an independent copy of the roster.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// FindByName returns the position of the first identity matching name.
func (r Roster) FindByName(name string) (int, bool) {
	for pos, identity := range r {
		if identity.Matches(name) {
			return pos, true
		}
	}
	return -1, false
}

// Labels returns the menu label of every identity in roster order.
func (r Roster) Labels() []string {
	labels := make([]string, len(r))
	for pos, identity := range r {
		labels[pos] = identity.Label()
	}
	return labels
}

// NextID returns one more than the highest id in the roster.
func (r Roster) NextID() int {
	next := 1
	for _, identity := range r {
		if identity.ID >= next {
			next = identity.ID + 1
		}
	}
	return next
}
