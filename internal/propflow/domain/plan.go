package domain

// Plan is a billing tier from the plan catalogue.
type Plan struct {
	Name          string   `yaml:"name" json:"name"`
	Features      []string `yaml:"features" json:"features"`
	MaxProperties int      `yaml:"max_properties" json:"max_properties"`
}
