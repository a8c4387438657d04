package pdf

import (
	"fmt"
	"sort"
)

// Document is an arena of indirect objects plus the trailer dictionary.
// Mutation happens by allocating new objects or replacing arena slots;
// existing Objects are never modified in place.
type Document struct {
	objects map[int]Object
	maxNum  int
	trailer Dict
}

// resolveDepth bounds reference chains to guard against cycles.
const resolveDepth = 32

// Resolve follows indirect references until a direct object or a
// dangling reference (Null) is reached.
func (d *Document) Resolve(o Object) Object {
	for i := 0; i < resolveDepth; i++ {
		ref, ok := o.(Ref)
		if !ok {
			return o
		}
		target, ok := d.objects[ref.Num]
		if !ok {
			return Null{}
		}
		o = target
	}
	return Null{}
}

// ResolveDict resolves o and unwraps it as a dictionary.
func (d *Document) ResolveDict(o Object) (Dict, bool) {
	dict, ok := d.Resolve(o).(Dict)
	return dict, ok
}

// ResolveArray resolves o and unwraps it as an array.
func (d *Document) ResolveArray(o Object) (Array, bool) {
	arr, ok := d.Resolve(o).(Array)
	return arr, ok
}

// Get returns the arena object for a reference.
func (d *Document) Get(r Ref) (Object, bool) {
	o, ok := d.objects[r.Num]
	return o, ok
}

// Set replaces the arena slot of an existing reference.
func (d *Document) Set(r Ref, o Object) {
	d.objects[r.Num] = o
	if r.Num > d.maxNum {
		d.maxNum = r.Num
	}
}

// Add allocates a fresh object number for o and returns its reference.
func (d *Document) Add(o Object) Ref {
	d.maxNum++
	d.objects[d.maxNum] = o
	return Ref{Num: d.maxNum}
}

// Catalog returns the document catalog dictionary.
func (d *Document) Catalog() (Dict, error) {
	root, ok := d.trailer[Name("Root")]
	if !ok {
		return nil, fmt.Errorf("trailer has no /Root")
	}
	dict, ok := d.ResolveDict(root)
	if !ok {
		return nil, fmt.Errorf("catalog is not a dictionary")
	}
	return dict, nil
}

// Pages returns references to the page objects in document order,
// walking the page tree depth-first.
func (d *Document) Pages() ([]Ref, error) {
	catalog, err := d.Catalog()
	if err != nil {
		return nil, err
	}
	rootRef, ok := catalog[Name("Pages")].(Ref)
	if !ok {
		return nil, fmt.Errorf("catalog has no /Pages reference")
	}

	var pages []Ref
	visited := make(map[int]bool)
	var walk func(ref Ref) error
	walk = func(ref Ref) error {
		if visited[ref.Num] {
			return fmt.Errorf("cycle in page tree at object %d", ref.Num)
		}
		visited[ref.Num] = true

		node, ok := d.ResolveDict(ref)
		if !ok {
			return fmt.Errorf("page tree node %d is not a dictionary", ref.Num)
		}
		switch node[Name("Type")] {
		case Name("Page"):
			pages = append(pages, ref)
			return nil
		case Name("Pages"):
			kids, ok := d.ResolveArray(node[Name("Kids")])
			if !ok {
				return fmt.Errorf("pages node %d has no /Kids", ref.Num)
			}
			for _, kid := range kids {
				kidRef, ok := kid.(Ref)
				if !ok {
					return fmt.Errorf("page tree kid is not a reference")
				}
				if err := walk(kidRef); err != nil {
					return err
				}
			}
			return nil
		default:
			return fmt.Errorf("unexpected page tree node type in object %d", ref.Num)
		}
	}
	if err := walk(rootRef); err != nil {
		return nil, err
	}
	return pages, nil
}

// PageIndex maps a page object reference to its zero-based index.
func (d *Document) PageIndex(pages []Ref, ref Ref) (int, bool) {
	for i, p := range pages {
		if p.Num == ref.Num {
			return i, true
		}
	}
	return 0, false
}

// NamedDest is one entry of the document's named-navigation table: a
// name bound to an explicit destination array such as
// [page /XYZ left top zoom].
type NamedDest struct {
	Name   string
	Target Array
}

// NamedDestinations collects the document's named destinations from
// both the PDF 1.1 /Dests dictionary and the /Names name tree, in a
// deterministic order (sorted within each source, tree entries in tree
// order). Entries whose target cannot be resolved to an array are
// dropped.
func (d *Document) NamedDestinations() ([]NamedDest, error) {
	catalog, err := d.Catalog()
	if err != nil {
		return nil, err
	}

	var dests []NamedDest
	add := func(name string, target Object) {
		arr := d.destArray(target)
		if arr != nil {
			dests = append(dests, NamedDest{Name: name, Target: arr})
		}
	}

	if legacy, ok := d.ResolveDict(catalog[Name("Dests")]); ok {
		names := make([]string, 0, len(legacy))
		for n := range legacy {
			names = append(names, string(n))
		}
		sort.Strings(names)
		for _, n := range names {
			add(n, legacy[Name(n)])
		}
	}

	if names, ok := d.ResolveDict(catalog[Name("Names")]); ok {
		if tree, ok := d.ResolveDict(names[Name("Dests")]); ok {
			if err := d.walkNameTree(tree, add, 0); err != nil {
				return nil, err
			}
		}
	}
	return dests, nil
}

// walkNameTree traverses a name tree node, visiting leaf /Names pairs
// in tree order.
func (d *Document) walkNameTree(node Dict, visit func(string, Object), depth int) error {
	if depth > resolveDepth {
		return fmt.Errorf("name tree too deep")
	}
	if pairs, ok := d.ResolveArray(node[Name("Names")]); ok {
		for i := 0; i+1 < len(pairs); i += 2 {
			name, ok := d.Resolve(pairs[i]).(String)
			if !ok {
				continue
			}
			visit(string(name), pairs[i+1])
		}
	}
	if kids, ok := d.ResolveArray(node[Name("Kids")]); ok {
		for _, kid := range kids {
			child, ok := d.ResolveDict(kid)
			if !ok {
				continue
			}
			if err := d.walkNameTree(child, visit, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// destArray unwraps a destination target: either a bare array or a
// dictionary whose /D holds the array.
func (d *Document) destArray(target Object) Array {
	switch t := d.Resolve(target).(type) {
	case Array:
		return t
	case Dict:
		if arr, ok := d.ResolveArray(t[Name("D")]); ok {
			return arr
		}
	}
	return nil
}

// Annotations returns the annotation array of a page, which may hold
// references and inline dictionaries.
func (d *Document) Annotations(page Ref) (Array, bool) {
	dict, ok := d.ResolveDict(page)
	if !ok {
		return nil, false
	}
	arr, ok := d.ResolveArray(dict[Name("Annots")])
	return arr, ok
}

// SetAnnotations installs annots as the page's annotation array,
// replacing the page dictionary in the arena.
func (d *Document) SetAnnotations(page Ref, annots Array) error {
	dict, ok := d.ResolveDict(page)
	if !ok {
		return fmt.Errorf("page %d is not a dictionary", page.Num)
	}
	updated := make(Dict, len(dict)+1)
	for k, v := range dict {
		updated[k] = v
	}
	updated[Name("Annots")] = annots
	d.Set(page, updated)
	return nil
}
