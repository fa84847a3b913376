package tres

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-tres/value"
	"github.com/sourcegraph/conc"
)

// ResPrefix is the prefix of virtual paths relative to the game root.
const ResPrefix = "res://"

// ResourcesDir is the directory under the game root holding entity categories.
const ResourcesDir = "resources"

// Loader reads and writes the resource documents of a game project.
//
// A Loader keeps no state between calls: every load scans the file system
// again and returned resources are owned by the caller.
type Loader struct {
	root string
	opts *options
}

// NewLoader returns a Loader for the game project rooted at root.
func NewLoader(root string, opts ...Option) (*Loader, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Loader{root: root, opts: o}, nil
}

// Root returns the game root directory.
func (l *Loader) Root() string {
	return l.root
}

// CategoryDir returns the directory holding the resources of category.
func (l *Loader) CategoryDir(category string) string {
	return filepath.Join(l.root, ResourcesDir, category)
}

// ParseFile parses a single document.
func (l *Loader) ParseFile(path string) (*Resource, error) {
	return parseFile(path, l.opts)
}

// LoadDir parses every document directly inside dir, in file name order.
// Files that fail to parse are logged and left out of the result. A missing
// directory yields no resources and no error.
func (l *Loader) LoadDir(dir string) ([]*Resource, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tres: %w", err)
	}

	var resources []*Resource
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), l.opts.extension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		r, err := parseFile(path, l.opts)
		if err != nil {
			l.opts.logger.Error("failed to load resource", "file", path, "error", err)
			continue
		}
		resources = append(resources, r)
	}
	return resources, nil
}

// LoadAll loads the flat category directory resources/<category>.
func (l *Loader) LoadAll(category string) ([]*Resource, error) {
	return l.LoadDir(l.CategoryDir(category))
}

// LoadChaptered loads resources/<category>/<chapter> for every chapter
// directory, in name order, and concatenates the results.
func (l *Loader) LoadChaptered(category string) ([]*Resource, error) {
	dir := l.CategoryDir(category)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tres: %w", err)
	}

	var resources []*Resource
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		chapter, err := l.LoadDir(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		resources = append(resources, chapter...)
	}
	return resources, nil
}

// Load loads a category the way its layout requires.
func (l *Loader) Load(c Category) ([]*Resource, error) {
	if c.Chaptered {
		return l.LoadChaptered(c.Dir)
	}
	return l.LoadAll(c.Dir)
}

func (l *Loader) Units() ([]*Resource, error)     { return l.Load(Units) }
func (l *Loader) Abilities() ([]*Resource, error) { return l.Load(Abilities) }
func (l *Loader) Gear() ([]*Resource, error)      { return l.Load(Gear) }
func (l *Loader) Stages() ([]*Resource, error)    { return l.Load(Stages) }
func (l *Loader) Dungeons() ([]*Resource, error)  { return l.Load(Dungeons) }

// Project maps category directories to their resources.
type Project map[string][]*Resource

// LoadProject loads every known category concurrently.
func (l *Loader) LoadProject() (Project, error) {
	results := make([][]*Resource, len(Categories))
	errs := make([]error, len(Categories))

	var wg conc.WaitGroup
	for i, c := range Categories {
		wg.Go(func() {
			results[i], errs[i] = l.Load(c)
		})
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	p := make(Project, len(Categories))
	for i, c := range Categories {
		p[c.Dir] = results[i]
	}
	return p, nil
}

// All returns the resources of every category, in category order.
func (p Project) All() []*Resource {
	var all []*Resource
	for _, c := range Categories {
		all = append(all, p[c.Dir]...)
	}
	return all
}

// WriteFile writes r to path using the loader's options.
func (l *Loader) WriteFile(r *Resource, path string) error {
	return writeFile(r, path, l.opts)
}

// Save writes r back to its FilePath.
func (l *Loader) Save(r *Resource) error {
	if r.FilePath == "" {
		return ErrNoFilePath
	}
	return l.WriteFile(r, r.FilePath)
}

// Remove deletes the file backing r.
func (l *Loader) Remove(r *Resource) error {
	if r.FilePath == "" {
		return ErrNoFilePath
	}
	if err := os.Remove(r.FilePath); err != nil {
		return fmt.Errorf("tres: %w", err)
	}
	return nil
}

// GenerateUID returns a new uid for a resource; see GenerateUID.
func (l *Loader) GenerateUID(prefix string) string {
	return GenerateUID(prefix)
}

// ResPath returns the res:// path of a file inside the game root.
func (l *Loader) ResPath(path string) (string, error) {
	root, err := filepath.Abs(l.root)
	if err != nil {
		return "", fmt.Errorf("tres: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("tres: %w", err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("tres: %s is outside the game root %s", path, l.root)
	}
	return ResPrefix + filepath.ToSlash(rel), nil
}

// Reference adds an entry for target to r's reference table and returns the
// value that refers to it. An existing entry with the same path is reused;
// otherwise the id is "<n>_<suffix>" with n the first index from 2 that is
// not taken.
func (l *Loader) Reference(r *Resource, target *Resource, suffix string) (value.ExtResourceRef, error) {
	if target.FilePath == "" {
		return "", ErrNoFilePath
	}
	path, err := l.ResPath(target.FilePath)
	if err != nil {
		return "", err
	}
	for id, ext := range r.ExtResources.All() {
		if ext.Path == path {
			return value.ExtResourceRef(id), nil
		}
	}
	id := nextRefID(r, suffix)
	r.ExtResources.Set(id, ExtResource{Type: target.Type, UID: target.UID, Path: path})
	return value.ExtResourceRef(id), nil
}

func nextRefID(r *Resource, suffix string) string {
	for n := 2; ; n++ {
		id := strconv.Itoa(n) + "_" + suffix
		if !r.ExtResources.Has(id) {
			return id
		}
	}
}

// Resolve finds the resource that r's reference refID points to among
// candidates. The reference path, without its res:// prefix, is matched
// against the end of each candidate's FilePath with path separators
// normalized to '/'. It reports false when refID is not in r's reference
// table or no candidate matches.
func Resolve(r *Resource, refID string, candidates []*Resource) (*Resource, bool) {
	ext, ok := r.ExtResources.Get(refID)
	if !ok {
		return nil, false
	}
	want := strings.TrimPrefix(normalizePath(ext.Path), ResPrefix)
	if want == "" {
		return nil, false
	}
	i := slices.IndexFunc(candidates, func(c *Resource) bool {
		return c != nil && c.FilePath != "" && strings.HasSuffix(normalizePath(c.FilePath), want)
	})
	if i < 0 {
		return nil, false
	}
	return candidates[i], true
}

// ResolveValue resolves every reference contained in v, descending into
// arrays, and returns the matches in order. Unresolved ids are returned
// separately.
func ResolveValue(r *Resource, v value.Value, candidates []*Resource) (found []*Resource, missing []string) {
	var walk func(value.Value)
	walk = func(v value.Value) {
		switch v := v.(type) {
		case value.ExtResourceRef:
			if c, ok := Resolve(r, string(v), candidates); ok {
				found = append(found, c)
			} else {
				missing = append(missing, string(v))
			}
		case value.TypedArray:
			for _, item := range v.Items {
				walk(item)
			}
		case value.UntypedArray:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(v)
	return found, missing
}

func normalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
