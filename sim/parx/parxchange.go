// Package parx implements ParXChange: the typed, unit-aware, static
// parameter store. Grounded on original_source's core/ParXChange.java.
package parx

import (
	"fmt"
	"strings"
	"time"

	"github.com/robknapen/WISS-Framework/sim/unit"
)

// key identifies a parameter entry by uppercased name and type tag. Only
// name and type participate in identity (mirroring ParValue.java's
// case-insensitive-name-only equals/hashCode): unit, mutability, and
// tombstone state are payload, not identity.
type key struct {
	name string
	tag  TypeTag
}

type entry struct {
	value      any
	scientificUnit unit.ScientificUnit
	immutable  bool
	tombstoned bool
}

// ParXChange is a single-threaded, keyed (name, type) map of parameters.
type ParXChange struct {
	entries map[key]*entry
}

// New returns an empty ParXChange store.
func New() *ParXChange {
	return &ParXChange{entries: make(map[key]*entry)}
}

func upper(name string) string {
	return strings.ToUpper(name)
}

// Set creates or replaces the (name, tag) entry. Numeric tags require a unit
// other than unit.NA; non-numeric tags are stored with unit.NA regardless of
// what is passed.
//
// Fails (panics) if the entry exists, is not tombstoned, and is immutable.
// Writing a tombstoned entry revives it and clears the tombstone, even if it
// was marked immutable — a soft-deleted slot has no standing to refuse a
// rewrite.
func (p *ParXChange) Set(name string, tag TypeTag, value any, scientificUnit unit.ScientificUnit, immutable bool) {
	const methodName = "Set"
	if strings.TrimSpace(name) == "" {
		panic(fmt.Sprintf("parx.ParXChange.%s : the variable name is empty", methodName))
	}
	if tag.isNumeric() && scientificUnit == unit.NA {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s requires a scientific unit, got NA (name=%s)", methodName, tag, name))
	}
	if !tag.isNumeric() {
		scientificUnit = unit.NA
	}

	k := key{upper(name), tag}
	if existing, ok := p.entries[k]; ok {
		if !existing.tombstoned && existing.immutable {
			panic(fmt.Sprintf("parx.ParXChange.%s : %s (%s) is immutable and already set", methodName, name, tag))
		}
		existing.value = value
		existing.scientificUnit = scientificUnit
		existing.immutable = immutable
		existing.tombstoned = false
		return
	}

	p.entries[k] = &entry{value: value, scientificUnit: scientificUnit, immutable: immutable, tombstoned: false}
}

// lookup resolves (name, tag), applying the Double->Integer fallback when tag
// is TypeDouble and no Double entry exists.
func (p *ParXChange) lookup(name string, tag TypeTag) (*entry, TypeTag, bool) {
	k := key{upper(name), tag}
	if e, ok := p.entries[k]; ok {
		return e, tag, true
	}
	if tag == TypeDouble {
		k2 := key{upper(name), TypeInt}
		if e, ok := p.entries[k2]; ok {
			return e, TypeInt, true
		}
	}
	return nil, tag, false
}

// Get retrieves a non-numeric entry. Panics if called with a numeric tag
// (TypeDouble/TypeInt): numeric reads must go through GetNumeric so the
// caller supplies a target unit for conversion. caller is included in the
// panic message for context, matching the Java source's convention of
// naming the calling class in its own error messages.
func (p *ParXChange) Get(name string, caller string, tag TypeTag) any {
	const methodName = "Get"
	if tag.isNumeric() {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s is numeric, use GetNumeric with a target unit (name=%s, caller=%s)", methodName, tag, name, caller))
	}
	e, _, ok := p.lookup(name, tag)
	if !ok || e.tombstoned {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s (%s) not found (caller=%s)", methodName, name, tag, caller))
	}
	return e.value
}

// GetString, GetBool, GetDate are typed convenience wrappers over Get.
func (p *ParXChange) GetString(name, caller string) string {
	return p.Get(name, caller, TypeString).(string)
}

func (p *ParXChange) GetBool(name, caller string) bool {
	return p.Get(name, caller, TypeBool).(bool)
}

func (p *ParXChange) GetDate(name, caller string) time.Time {
	return p.Get(name, caller, TypeDate).(time.Time)
}

// GetNumeric retrieves a numeric entry converted to targetUnit. When tag is
// TypeDouble and no Double entry exists, falls back to an Integer entry of
// the same name, widening it to float64.
func (p *ParXChange) GetNumeric(name, caller string, tag TypeTag, targetUnit unit.ScientificUnit) float64 {
	const methodName = "GetNumeric"
	if !tag.isNumeric() {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s is not numeric (name=%s, caller=%s)", methodName, tag, name, caller))
	}
	e, resolvedTag, ok := p.lookup(name, tag)
	if !ok || e.tombstoned {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s (%s) not found (caller=%s)", methodName, name, tag, caller))
	}

	var raw float64
	switch resolvedTag {
	case TypeDouble:
		raw = e.value.(float64)
	case TypeInt:
		raw = float64(e.value.(int))
	}
	return unit.Convert(name, raw, e.scientificUnit, targetUnit)
}

// Contains reports whether (name, tag) exists, applying the same
// Double->Integer fallback as GetNumeric/Get. includeDeleted controls
// whether a tombstoned entry still counts as present.
func (p *ParXChange) Contains(name string, tag TypeTag, includeDeleted bool) bool {
	e, _, ok := p.lookup(name, tag)
	if !ok {
		return false
	}
	if e.tombstoned && !includeDeleted {
		return false
	}
	return true
}

// Delete tombstones (name, tag). Panics if the entry does not exist or is
// already tombstoned — deleting twice is a contract violation, not a no-op.
func (p *ParXChange) Delete(name string, tag TypeTag) {
	const methodName = "Delete"
	k := key{upper(name), tag}
	e, ok := p.entries[k]
	if !ok {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s (%s) not found", methodName, name, tag))
	}
	if e.tombstoned {
		panic(fmt.Sprintf("parx.ParXChange.%s : %s (%s) is already deleted", methodName, name, tag))
	}
	e.tombstoned = true
}

// Names returns a snapshot of the uppercased name of every registered
// (name, tag) entry (including tombstoned ones), in no particular order; a
// name registered under two tags appears twice. Iteration
// over ParXChange always works from a snapshot: the store is
// single-threaded and callers must not mutate it while iterating the result.
func (p *ParXChange) Names() []string {
	names := make([]string, 0, len(p.entries))
	for k := range p.entries {
		names = append(names, k.name)
	}
	return names
}
