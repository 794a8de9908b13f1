package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	VariantIndividual = "individual"
	VariantManager    = "manager"
)

var (
	//go:embed data/individual.yaml
	individualYAML []byte

	//go:embed data/manager.yaml
	managerYAML []byte
)

// The embedded catalogs are versioned with the code, so a broken file is a
// build defect and fails loudly at init.
var (
	individual = mustParse(individualYAML)
	manager    = mustParse(managerYAML)
)

// Individual returns the individual-respondent catalog ("q" keys, threshold 3.0).
func Individual() *Catalog { return individual }

// Manager returns the manager catalog ("mq" keys, threshold 3.5).
func Manager() *Catalog { return manager }

// ByVariant resolves a variant name to its catalog.
func ByVariant(name string) (*Catalog, error) {
	switch name {
	case VariantIndividual:
		return individual, nil
	case VariantManager:
		return manager, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// Parse decodes a YAML catalog and validates it. Unknown fields are rejected
// so that a typo in the data file does not silently drop content.
func Parse(raw []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("catalog: empty document")
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func mustParse(raw []byte) *Catalog {
	c, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks the catalog's structural invariants and builds its lookup
// index. Every problem found is reported, not just the first.
func (c *Catalog) Validate() error {
	var errs []error

	if c.Variant == "" {
		errs = append(errs, errors.New("variant must not be empty"))
	}
	if c.KeyPrefix == "" {
		errs = append(errs, errors.New("key_prefix must not be empty"))
	}
	if c.ProfileThreshold <= 0 || c.ProfileThreshold > 5 {
		errs = append(errs, fmt.Errorf("profile_threshold %.2f out of range (0,5]", c.ProfileThreshold))
	}
	if c.FallbackAdvice == "" {
		errs = append(errs, errors.New("fallback_advice must not be empty"))
	}

	// Categories: unique names, full band advice.
	if len(c.Categories) == 0 {
		errs = append(errs, errors.New("categories must not be empty"))
	}
	index := make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name must not be empty", i))
			continue
		}
		if _, dup := index[cat.Name]; dup {
			errs = append(errs, fmt.Errorf("category %q declared twice", cat.Name))
			continue
		}
		index[cat.Name] = i
		for _, b := range Bands {
			if cat.Advice[b] == "" {
				errs = append(errs, fmt.Errorf("category %q: missing %s advice", cat.Name, b))
			}
		}
	}

	// Questions: ids dense and 1-based in declaration order.
	if len(c.Questions) == 0 {
		errs = append(errs, errors.New("questions must not be empty"))
	}
	for i, q := range c.Questions {
		if q.ID != i+1 {
			errs = append(errs, fmt.Errorf("questions[%d]: id %d, want %d", i, q.ID, i+1))
		}
		if _, ok := index[q.Category]; !ok {
			errs = append(errs, fmt.Errorf("question %d: unknown category %q", q.ID, q.Category))
		}
		if q.Factor != FactorHygiene && q.Factor != FactorMotivator {
			errs = append(errs, fmt.Errorf("question %d: unknown factor %q", q.ID, q.Factor))
		}
		if q.Text == "" {
			errs = append(errs, fmt.Errorf("question %d: text must not be empty", q.ID))
		}
	}

	for _, p := range Profiles {
		if d, ok := c.Profiles[p]; !ok || d.Title == "" {
			errs = append(errs, fmt.Errorf("missing advice for profile %q", p))
		}
	}

	if len(c.SDT.Needs) > 0 {
		for _, need := range c.SDT.Needs {
			if len(need.Categories) == 0 {
				errs = append(errs, fmt.Errorf("sdt need %q: no categories", need.Name))
			}
			for _, cat := range need.Categories {
				if _, ok := index[cat]; !ok {
					errs = append(errs, fmt.Errorf("sdt need %q: unknown category %q", need.Name, cat))
				}
			}
			for _, b := range Bands {
				if len(need.Tips[b]) == 0 {
					errs = append(errs, fmt.Errorf("sdt need %q: missing %s tips", need.Name, b))
				}
			}
		}
		for _, b := range Bands {
			if c.SDT.Profiles[b].Title == "" {
				errs = append(errs, fmt.Errorf("sdt: missing %s profile", b))
			}
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("catalog %q: %w", c.Variant, err)
	}

	c.categoryIndex = index
	return nil
}
