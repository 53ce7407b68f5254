package service

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

//go:embed plans.yaml
var defaultPlans []byte

// PlanCatalogue holds the billing tiers invitations can assign. A plan with
// MaxProperties 0 is unlimited.
type PlanCatalogue struct {
	plans []domain.Plan
	index map[string]int
}

type planFile struct {
	Plans []domain.Plan `yaml:"plans"`
}

// LoadPlanCatalogue reads the catalogue at path, or the built-in one when
// path is empty.
func LoadPlanCatalogue(path string) (*PlanCatalogue, error) {
	if path == "" {
		return ParsePlanCatalogue(defaultPlans)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan catalogue: %w", err)
	}
	return ParsePlanCatalogue(data)
}

// ParsePlanCatalogue decodes a YAML catalogue, rejecting unknown keys,
// unnamed or duplicate plans and negative limits.
func ParsePlanCatalogue(data []byte) (*PlanCatalogue, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f planFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode plan catalogue: %w", err)
	}
	if len(f.Plans) == 0 {
		return nil, errors.New("plan catalogue is empty")
	}

	c := &PlanCatalogue{index: make(map[string]int, len(f.Plans))}
	for _, p := range f.Plans {
		if p.Name == "" {
			return nil, errors.New("plan without a name")
		}
		if _, dup := c.index[p.Name]; dup {
			return nil, fmt.Errorf("duplicate plan %q", p.Name)
		}
		if p.MaxProperties < 0 {
			return nil, fmt.Errorf("plan %q: max_properties must not be negative", p.Name)
		}
		c.index[p.Name] = len(c.plans)
		c.plans = append(c.plans, p)
	}
	return c, nil
}

// Get returns the named plan.
func (c *PlanCatalogue) Get(name string) (domain.Plan, bool) {
	i, ok := c.index[name]
	if !ok {
		return domain.Plan{}, false
	}
	return c.plans[i], true
}

// Has reports whether name is a known plan.
func (c *PlanCatalogue) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// List returns plans in catalogue order.
func (c *PlanCatalogue) List() []domain.Plan {
	return append([]domain.Plan(nil), c.plans...)
}
