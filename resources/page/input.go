package page

import "sort"

// Input is the bundler's build input: either one template path or a map
// of output name to template path.
type Input struct {
	Single string
	Named  map[string]string
}

// IsZero reports whether no input is set.
func (i Input) IsZero() bool {
	return i.Single == "" && len(i.Named) == 0
}

// Entry is one build input.
type Entry struct {
	Name     string
	Template string
}

// Entries returns the inputs sorted by name. A single input is named
// after its template.
func (i Input) Entries() []Entry {
	if i.Single != "" {
		return []Entry{{Name: i.Single, Template: i.Single}}
	}
	entries := make([]Entry, 0, len(i.Named))
	for name, template := range i.Named {
		entries = append(entries, Entry{Name: name, Template: template})
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Name < entries[b].Name
	})
	return entries
}

// InputMap returns the build input for the registered pages.
//
// Inputs configured by the user always win: if existing is set, InputMap
// returns false and contributes nothing.
func (r *Registry) InputMap(existing Input) (Input, bool) {
	if !existing.IsZero() {
		return Input{}, false
	}

	if r.mode == ModeSingle {
		p := r.pages[0]
		if p.Output == "" {
			return Input{Single: p.Template}, true
		}
		return Input{Named: map[string]string{p.Output: p.Template}}, true
	}

	named := make(map[string]string, len(r.pages))
	for _, p := range r.pages {
		named[p.Output] = p.Template
	}
	return Input{Named: named}, true
}
