package attachment

type Kind int

const (
	// Single holds one reference path.
	Single Kind = iota
	// List holds an array of reference paths.
	List
	// Nested holds a reference path inside each element of an array of objects.
	Nested
)

// Field describes one attachment-bearing field of a record.
type Field struct {
	Name      string // record field
	FormField string // multipart key, defaults to Name
	Kind      Kind
	Item      string // key inside each element, Nested only
	Filter    Filter
	MaxCount  int
	Required  bool
	SizeField string // record field receiving the upload size, Single only
}

func (f Field) formKey() string {
	if f.FormField != "" {
		return f.FormField
	}
	return f.Name
}

func (f Field) maxCount() int {
	if f.MaxCount > 0 {
		return f.MaxCount
	}
	if f.Kind == Single {
		return 1
	}
	return 10
}

// Schema binds a collection to its attachment fields.
type Schema struct {
	Collection string
	Category   string // Blob Store directory
	Entity     string // display name used in errors
	Required   []string
	Fields     []Field
}

func (s Schema) fieldByForm(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.formKey() == key {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) fieldByName(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name || f.formKey() == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) entity() string {
	if s.Entity != "" {
		return s.Entity
	}
	return s.Collection
}
