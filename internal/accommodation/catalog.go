package accommodation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog resolves accommodation ids. Implementations must be safe for
// concurrent use and must never change after construction.
type Catalog interface {
	Lookup(id string) (*Option, bool)
	List() []Option
}

// MaxPrice bounds a catalog price so totals stay far from int64 overflow.
const MaxPrice int64 = 1_000_000_000

type staticCatalog struct {
	options []Option
	byID    map[string]int
}

// NewCatalog builds an immutable catalog from options.
// Ids must be unique and non-empty, prices within [0, MaxPrice].
func NewCatalog(options []Option) (Catalog, error) {
	c := &staticCatalog{
		options: make([]Option, 0, len(options)),
		byID:    make(map[string]int, len(options)),
	}

	for _, o := range options {
		o.ID = strings.TrimSpace(o.ID)
		if o.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidOption)
		}
		if o.Price < 0 || o.Price > MaxPrice {
			return nil, fmt.Errorf("%w: price out of range for %q", ErrInvalidOption, o.ID)
		}
		if _, dup := c.byID[o.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidOption, o.ID)
		}
		c.byID[o.ID] = len(c.options)
		c.options = append(c.options, o)
	}

	return c, nil
}

// Lookup returns a copy of the option so callers cannot mutate the catalog.
func (c *staticCatalog) Lookup(id string) (*Option, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	o := c.options[i]
	return &o, true
}

func (c *staticCatalog) List() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

type catalogFile struct {
	Accommodations []Option `yaml:"accommodations"`
}

// LoadFile reads a YAML catalog of the form
//
//	accommodations:
//	  - id: cottage
//	    name: Open Cottage
//	    price: 1000
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Accommodations) == 0 {
		return nil, fmt.Errorf("%w: catalog %s is empty", ErrInvalidOption, path)
	}

	return NewCatalog(f.Accommodations)
}

// Load returns the catalog from path, or the built-in default catalog when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return NewCatalog(DefaultOptions())
	}
	return LoadFile(path)
}
