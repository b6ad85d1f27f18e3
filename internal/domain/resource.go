package domain

// Columns every resource table carries.
const (
	ColID        = "id"
	ColOwner     = "user_id"
	ColCreatedAt = "created_at"
	ColUpdatedAt = "updated_at"
)

// Kind is the storage type of a field.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate // calendar date, YYYY-MM-DD
	KindTime // timestamp
	KindJSON // nested structure (checklists, subtasks, tags)
)

// Record is one row of any resource table, keyed by column name.
type Record map[string]any

// Field describes one domain column of a resource.
// Default is used on create when the caller omits the field; nil means NULL.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
}

// Resource is the declarative descriptor of one entity family.
// Name is the URL segment, Table the backing table.
type Resource struct {
	Name    string
	Table   string
	Fields  []Field
	OrderBy string
	Desc    bool
	// FilterKey is the single column a list request may filter on via
	// the query string. Empty disables filtering.
	FilterKey string
}

// Field returns the domain field with the given name.
func (r Resource) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// KindOf returns the storage kind of any column of the table, including
// the server-managed ones.
func (r Resource) KindOf(column string) Kind {
	switch column {
	case ColID, ColOwner:
		return KindText
	case ColCreatedAt, ColUpdatedAt:
		return KindTime
	}
	if f, ok := r.Field(column); ok {
		return f.Kind
	}
	return KindText
}

// Columns lists every column in table order.
func (r Resource) Columns() []string {
	cols := make([]string, 0, len(r.Fields)+4)
	cols = append(cols, ColID, ColOwner)
	for _, f := range r.Fields {
		cols = append(cols, f.Name)
	}
	return append(cols, ColCreatedAt, ColUpdatedAt)
}

// HasColumn reports whether column belongs to the table.
func (r Resource) HasColumn(column string) bool {
	switch column {
	case ColID, ColOwner, ColCreatedAt, ColUpdatedAt:
		return true
	}
	_, ok := r.Field(column)
	return ok
}

// Required returns the names of fields mandatory at creation.
func (r Resource) Required() []string {
	var out []string
	for _, f := range r.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
