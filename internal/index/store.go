// Package index acquires javadoc index files (element-list and
// package-list) and caches them per component on disk.
package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jcdickinson/doclinks/internal/component"
)

const (
	// ElementList is the index file name written by javadoc 10 and later.
	ElementList = "element-list"
	// PackageList is the index file name written by older javadoc releases.
	PackageList = "package-list"
)

// Names lists both index file names, canonical first.
var Names = [2]string{ElementList, PackageList}

// Store is the on-disk cache layout: <Root>/<group>/<name>/<version>/.
type Store struct {
	Root string
}

// NewStore returns a Store rooted at the absolute form of root.
func NewStore(root string) (Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Store{}, fmt.Errorf("resolving cache root: %w", err)
	}
	return Store{Root: abs}, nil
}

// SlotPath returns the cache slot directory of id.
func (s Store) SlotPath(id component.ID) string {
	return filepath.Join(s.Root, id.Group, id.Name, id.Version)
}

// ErrInvalidSlot is wrapped by warnings for components whose coordinates
// can not name a directory under the cache root.
var ErrInvalidSlot = errors.New("component can not be mapped to a cache slot")

// validSlot rejects ids that would escape the cache root.
func validSlot(id component.ID) error {
	for _, part := range []string{id.Group, id.Name, id.Version} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("%w: %s", ErrInvalidSlot, id)
		}
	}
	return nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Has reports which index files are present in the slot of id.
func (s Store) Has(id component.ID) (element, pkg bool) {
	slot := s.SlotPath(id)
	return exists(filepath.Join(slot, ElementList)), exists(filepath.Join(slot, PackageList))
}

// Complete reports whether both index files exist for id.
func (s Store) Complete(id component.ID) bool {
	element, pkg := s.Has(id)
	return element && pkg
}

// Read returns the canonical index of id, falling back to the legacy name.
func (s Store) Read(id component.ID) ([]byte, error) {
	if err := validSlot(id); err != nil {
		return nil, err
	}
	slot := s.SlotPath(id)
	data, err := os.ReadFile(filepath.Join(slot, ElementList))
	if err == nil {
		return data, nil
	}
	data, err2 := os.ReadFile(filepath.Join(slot, PackageList))
	if err2 != nil {
		return nil, fmt.Errorf("reading index of %s: %w", id, err)
	}
	return data, nil
}

// Slot describes one cached component.
type Slot struct {
	ID          component.ID `json:"id"`
	ElementList bool         `json:"element_list"`
	PackageList bool         `json:"package_list"`
}

// List returns every slot under the cache root, sorted by path. A missing
// root is an empty cache.
func (s Store) List() ([]Slot, error) {
	var slots []Slot
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == s.Root {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 3 {
			return nil
		}
		id := component.ID{Group: parts[0], Name: parts[1], Version: parts[2]}
		element, pkg := s.Has(id)
		slots = append(slots, Slot{ID: id, ElementList: element, PackageList: pkg})
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	return slots, nil
}

// Clear removes the whole cache tree.
func (s Store) Clear() error {
	if err := os.RemoveAll(s.Root); err != nil {
		return fmt.Errorf("removing cache root: %w", err)
	}
	return nil
}

// writeFile writes data under slot/name via a temporary file so an
// interrupted run never leaves a truncated index behind.
func writeFile(slot, name string, data []byte) error {
	tmp, err := os.CreateTemp(slot, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(slot, name)); err != nil {
		return fmt.Errorf("renaming %s: %w", name, err)
	}
	return nil
}

// completeTwins copies whichever index file exists onto the missing name.
// It reports whether the slot holds any index afterwards.
func completeTwins(slot string) (bool, error) {
	elementPath := filepath.Join(slot, ElementList)
	packagePath := filepath.Join(slot, PackageList)
	hasElement, hasPackage := exists(elementPath), exists(packagePath)

	var from, to string
	switch {
	case hasElement && hasPackage:
		return true, nil
	case hasElement:
		from, to = elementPath, PackageList
	case hasPackage:
		from, to = packagePath, ElementList
	default:
		return false, nil
	}

	data, err := os.ReadFile(from)
	if err != nil {
		return true, fmt.Errorf("reading %s: %w", filepath.Base(from), err)
	}
	if err := writeFile(slot, to, data); err != nil {
		return true, err
	}
	return true, nil
}
