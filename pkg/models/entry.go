package models

// FileList is the ordered list of files selected for comparison.
// Entries are unique and kept in discovery order.
type FileList []string

// Contains reports whether the list holds the given file
func (l FileList) Contains(file string) bool {
	return l.Index(file) >= 0
}

// Index returns the position of file in the list, or -1
func (l FileList) Index(file string) int {
	for i, f := range l {
		if f == file {
			return i
		}
	}
	return -1
}

// KeySet is a set of top-level keys that remembers insertion order
type KeySet struct {
	keys  []string
	index map[string]struct{}
}

// NewKeySet creates a key set holding the given keys
func NewKeySet(keys ...string) *KeySet {
	s := &KeySet{
		keys:  make([]string, 0, len(keys)),
		index: make(map[string]struct{}, len(keys)),
	}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key and reports whether it was not present yet
func (s *KeySet) Add(key string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

// Has reports whether key is in the set
func (s *KeySet) Has(key string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[key]
	return ok
}

// Len returns the number of keys
func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order
func (s *KeySet) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// ContentMap maps each file to its key set.
// Files are iterated in the order they were first added.
type ContentMap struct {
	files []string
	sets  map[string]*KeySet
}

// NewContentMap creates an empty content map
func NewContentMap() *ContentMap {
	return &ContentMap{
		sets: make(map[string]*KeySet),
	}
}

// Set stores the key set of a file, replacing any previous one
func (m *ContentMap) Set(file string, keys *KeySet) {
	if _, ok := m.sets[file]; !ok {
		m.files = append(m.files, file)
	}
	m.sets[file] = keys
}

// Get returns the key set of a file
func (m *ContentMap) Get(file string) (*KeySet, bool) {
	ks, ok := m.sets[file]
	return ks, ok
}

// Files returns the files in insertion order
func (m *ContentMap) Files() []string {
	out := make([]string, len(m.files))
	copy(out, m.files)
	return out
}

// Len returns the number of files
func (m *ContentMap) Len() int {
	return len(m.files)
}
