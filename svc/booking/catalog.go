package booking

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/himtrails/tourbook/pkg/slug"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Location is a selectable value of the location field.
type Location struct {
	Value string `yaml:"value" json:"value"`
	Name  string `yaml:"name" json:"name"`
}

// Destination is a package card. Location is empty when the card does not
// map to a selectable location.
// A missing slug is derived from the title.
type Destination struct {
	Slug     string `yaml:"slug" json:"slug"`
	Title    string `yaml:"title" json:"title"`
	Price    string `yaml:"price" json:"price"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}

type Trek struct {
	Slug  string `yaml:"slug" json:"slug"`
	Title string `yaml:"title" json:"title"`
	Price string `yaml:"price" json:"price"`
}

// PeopleOption is a choice of the people field.
type PeopleOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Catalog is the read-only lookup data around the form.
type Catalog struct {
	Locations    []Location     `yaml:"locations" json:"locations"`
	Destinations []Destination  `yaml:"destinations" json:"destinations"`
	Treks        []Trek         `yaml:"treks" json:"treks"`
	People       []PeopleOption `yaml:"people" json:"people"`
}

// LoadCatalog decodes a YAML catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.check(); err != nil {
		return nil, err
	}
	return &c, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(catalogYAML))
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// check fills missing slugs and rejects duplicates and destinations
// pointing at unknown locations.
func (c *Catalog) check() error {
	locs := make(map[string]bool, len(c.Locations))
	for _, l := range c.Locations {
		if l.Value == "" || locs[l.Value] {
			return fmt.Errorf("%w: bad location %q", ErrInvalidCatalog, l.Value)
		}
		locs[l.Value] = true
	}

	slugs := make(map[string]bool, len(c.Destinations))
	for i := range c.Destinations {
		d := &c.Destinations[i]
		if d.Slug == "" {
			d.Slug = slug.Make(d.Title)
		}
		if d.Slug == "" || slugs[d.Slug] {
			return fmt.Errorf("%w: bad destination %q", ErrInvalidCatalog, d.Slug)
		}
		if d.Location != "" && !locs[d.Location] {
			return fmt.Errorf("%w: destination %q points at unknown location %q", ErrInvalidCatalog, d.Slug, d.Location)
		}
		slugs[d.Slug] = true
	}

	clear(slugs)
	for i := range c.Treks {
		t := &c.Treks[i]
		if t.Slug == "" {
			t.Slug = slug.Make(t.Title)
		}
		if t.Slug == "" || slugs[t.Slug] {
			return fmt.Errorf("%w: bad trek %q", ErrInvalidCatalog, t.Slug)
		}
		slugs[t.Slug] = true
	}
	return nil
}

// LocationName returns the display name of a location value, or the value
// itself when it is not in the catalog.
func (c *Catalog) LocationName(value string) string {
	for _, l := range c.Locations {
		if l.Value == value {
			return l.Name
		}
	}
	return value
}

func (c *Catalog) Destination(slug string) (Destination, bool) {
	for _, d := range c.Destinations {
		if d.Slug == slug {
			return d, true
		}
	}
	return Destination{}, false
}

func (c *Catalog) Trek(slug string) (Trek, bool) {
	for _, t := range c.Treks {
		if t.Slug == slug {
			return t, true
		}
	}
	return Trek{}, false
}
