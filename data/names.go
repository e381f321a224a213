package data

// NameList is an ordered set of names. Adding a name that is already present
// is a no-op, so the first occurrence keeps its position.
type NameList struct {
	names []string
	seen  map[string]struct{}
}

func NewNameList() *NameList {
	return &NameList{
		seen: make(map[string]struct{}),
	}
}

// Add appends name unless it is already present and reports whether it was added.
func (nl *NameList) Add(name string) bool {
	if nl.seen == nil {
		nl.seen = make(map[string]struct{})
	}
	if _, exists := nl.seen[name]; exists {
		return false
	}

	nl.seen[name] = struct{}{}
	nl.names = append(nl.names, name)

	return true
}

func (nl *NameList) Contains(name string) bool {
	_, exists := nl.seen[name]
	return exists
}

func (nl *NameList) Len() int {
	return len(nl.names)
}

// Names returns a copy of the names in insertion order.
func (nl *NameList) Names() []string {
	names := make([]string, len(nl.names))
	copy(names, nl.names)

	return names
}
