package query

import (
	"fmt"
	"sort"
)

// Kind describes how a logical field is reached from the root record
type Kind int

const (
	// KindDirect is a column on the root table
	KindDirect Kind = iota
	// KindRelation is a column on a to-one related table (owner, type, agency, tenant)
	KindRelation
	// KindAddress is a column on the first address linked through a join table
	KindAddress
	// KindContact is a column on the first contact linked through a join table
	KindContact
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindRelation:
		return "relation"
	case KindAddress:
		return "address"
	case KindContact:
		return "contact"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// FieldType is the value type of a logical field, driving filter coercion and comparison
type FieldType int

const (
	TypeText FieldType = iota
	TypeNumber
	TypeBool
	TypeDate
	TypeEnum
)

// Field declares one externally exposed sortable/filterable field
type Field struct {
	// Name is the public field name used in query strings
	Name string
	Kind Kind
	Type FieldType
	// Column is the store column holding the value. For direct fields it is qualified
	// with the root table; for other kinds it is qualified with the alias used in Scope.
	Column string
	// Path is the traversal path understood by GetPath
	Path string
	// Scope selects root rows having a related row that satisfies the predicate
	// substituted for %s. Empty for direct fields.
	Scope string
}

// IsDirect reports whether the field is a column on the root table
func (f Field) IsDirect() bool {
	return f.Kind == KindDirect
}

// Mapping is the immutable field table of one entity. It is shared by the
// pushed-down query builder and the in-memory fallback.
type Mapping struct {
	entity    string
	createdAt Field
	fields    map[string]Field
	ordered   []Field
	search    []Field
}

// NewMapping builds a mapping. Fields with an empty Path default to their Name.
// The field named "created_at" is used as the default ordering key.
func NewMapping(entity string, fields ...Field) *Mapping {
	m := &Mapping{
		entity:  entity,
		fields:  make(map[string]Field, len(fields)),
		ordered: make([]Field, 0, len(fields)),
	}
	for _, f := range fields {
		if f.Path == "" {
			f.Path = f.Name
		}
		if _, dup := m.fields[f.Name]; dup {
			panic(fmt.Sprintf("query: duplicate field %q in %s mapping", f.Name, entity))
		}
		m.fields[f.Name] = f
		m.ordered = append(m.ordered, f)
	}

	created, ok := m.fields["created_at"]
	if !ok {
		panic(fmt.Sprintf("query: %s mapping has no created_at field", entity))
	}
	m.createdAt = created

	for _, f := range m.ordered {
		if f.Type == TypeText {
			m.search = append(m.search, f)
		}
	}
	sort.SliceStable(m.search, func(i, j int) bool {
		return m.search[i].Kind < m.search[j].Kind
	})

	return m
}

// Entity returns the entity name the mapping describes
func (m *Mapping) Entity() string {
	return m.entity
}

// Lookup returns the field declared under name
func (m *Mapping) Lookup(name string) (Field, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// Fields returns a copy of the declared fields in declaration order
func (m *Mapping) Fields() []Field {
	out := make([]Field, len(m.ordered))
	copy(out, m.ordered)
	return out
}

// CreatedAt returns the creation timestamp field
func (m *Mapping) CreatedAt() Field {
	return m.createdAt
}

// SearchFields returns the text fields concatenated by free-text search:
// direct fields first, then relation, address and contact fields, each group
// in declaration order.
func (m *Mapping) SearchFields() []Field {
	out := make([]Field, len(m.search))
	copy(out, m.search)
	return out
}
