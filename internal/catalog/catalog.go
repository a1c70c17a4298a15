package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMalformed is returned when a catalog source cannot be turned into a price list.
var ErrMalformed = errors.New("malformed catalog")

// Entry is one priced item. Name is always lowercase.
type Entry struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog is the immutable item -> price table used for all server-side pricing.
// It is safe for concurrent use because nothing mutates it after New returns.
type Catalog struct {
	entries []Entry
	prices  map[string]int64
}

// New builds a Catalog from entries, keeping their order.
// Names are lowercased; empty names, negative prices and names that collide
// after lowercasing are rejected.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		prices:  make(map[string]int64, len(entries)),
	}
	for _, e := range entries {
		name := normalize(e.Name)
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: empty item name", ErrMalformed)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("%w: negative price %d for %q", ErrMalformed, e.Price, name)
		}
		if _, dup := c.prices[name]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrMalformed, name)
		}
		c.prices[name] = e.Price
		c.entries = append(c.entries, Entry{Name: name, Price: e.Price})
	}
	return c, nil
}

// Load reads a JSON object of item name -> integer price.
// Object order is preserved so the order form lists items as written.
func Load(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformed)
	}

	var entries []Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		name, _ := tok.(string)

		var raw json.Number
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: price for %q: %v", ErrMalformed, name, err)
		}
		price, err := raw.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: price for %q is not an integer", ErrMalformed, name)
		}
		entries = append(entries, Entry{Name: name, Price: price})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after object", ErrMalformed)
	}
	return New(entries)
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Lookup returns the price of name, ignoring case. Unknown items cost 0.
func (c *Catalog) Lookup(name string) int64 {
	return c.prices[normalize(name)]
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Prices returns a copy of the name -> price map.
func (c *Catalog) Prices() map[string]int64 {
	out := make(map[string]int64, len(c.prices))
	for k, v := range c.prices {
		out[k] = v
	}
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }

func normalize(name string) string {
	return strings.ToLower(name)
}
