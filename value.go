// value.go — the value tree produced by Parse.
//
// Every node records the Location of its first byte, so downstream
// consumers can point back into the source (for their own diagnostics)
// without re-parsing. The tree is plain data owned by the caller; this
// package builds it and never inspects it afterwards.
package jsonsrc

// Value is one node of a parsed tree: *Object, *Array, *String,
// *Number, *Boolean or *Null.
type Value interface {
	// Kind names the variant: "object", "array", "string", "number",
	// "boolean" or "null". Used in diagnostics.
	Kind() string
	// Location is the position of the value's first byte.
	Location() Location
}

type Null struct {
	Loc Location
}

type Boolean struct {
	Loc   Location
	Value bool
}

type Number struct {
	Loc   Location
	Value float64
}

type String struct {
	Loc   Location
	Value string
}

type Array struct {
	Loc      Location
	Elements []Value
}

// Object preserves member insertion order: Keys iterates in the order
// members first appeared in the source. A duplicate key replaces the
// earlier value but keeps its original position.
type Object struct {
	Loc     Location
	keys    []string
	members map[string]Value
}

func (v *Null) Kind() string    { return "null" }
func (v *Boolean) Kind() string { return "boolean" }
func (v *Number) Kind() string  { return "number" }
func (v *String) Kind() string  { return "string" }
func (v *Array) Kind() string   { return "array" }
func (v *Object) Kind() string  { return "object" }

func (v *Null) Location() Location    { return v.Loc }
func (v *Boolean) Location() Location { return v.Loc }
func (v *Number) Location() Location  { return v.Loc }
func (v *String) Location() Location  { return v.Loc }
func (v *Array) Location() Location   { return v.Loc }
func (v *Object) Location() Location  { return v.Loc }

// Len returns the number of distinct members.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns member names in insertion order. The returned slice is
// shared; callers must not modify it.
func (o *Object) Keys() []string { return o.keys }

// Get returns the member named name, if present.
func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.members[name]
	return v, ok
}

// set inserts or replaces a member. Last occurrence wins; the key keeps
// its first insertion position.
func (o *Object) set(name string, v Value) {
	if o.members == nil {
		o.members = make(map[string]Value)
	}
	if _, exists := o.members[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.members[name] = v
}
