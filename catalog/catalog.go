package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed operations.yaml
var operationsYAML []byte

// Error values for catalog loading.
var (
	ErrInvalidCatalog     = errors.New("catalog: invalid declaration")
	ErrDuplicateOperation = errors.New("catalog: duplicate operation name")
)

// Kind is the declared type of a parameter.
type Kind string

// Parameter kinds.
const (
	KindNumber   Kind = "number"
	KindInteger  Kind = "integer"
	KindNumbers  Kind = "numbers"
	KindIntegers Kind = "integers"
	KindTree     Kind = "tree"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindNumber, KindInteger, KindNumbers, KindIntegers, KindTree:
		return true
	}
	return false
}

// Category groups related operations.
type Category string

// Operation categories.
const (
	CategorySearch Category = "search"
	CategorySort   Category = "sort"
	CategoryArith  Category = "arith"
)

// Param declares one input or output of an operation.
type Param struct {
	Name        string `yaml:"name"`
	Nickname    string `yaml:"nickname"`
	Description string `yaml:"description"`
	Kind        Kind   `yaml:"kind"`
	Required    bool   `yaml:"required"`
}

// Example is a worked call of an operation.
type Example struct {
	Title  string         `yaml:"title"`
	Args   map[string]any `yaml:"args"`
	Result any            `yaml:"result"`
}

// Operation declares one callable operation.
type Operation struct {
	Name        string    `yaml:"name"`
	Title       string    `yaml:"title"`
	Nickname    string    `yaml:"nickname"`
	Category    Category  `yaml:"category"`
	Description string    `yaml:"description"`
	Notes       string    `yaml:"notes"`
	Aliases     []string  `yaml:"aliases"`
	Tags        []string  `yaml:"tags"`
	Inputs      []Param   `yaml:"inputs"`
	Outputs     []Param   `yaml:"outputs"`
	Examples    []Example `yaml:"examples"`
}

// Input returns the input declaration called name.
func (op Operation) Input(name string) (Param, bool) {
	for _, p := range op.Inputs {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Catalog is an immutable, ordered set of operation declarations.
type Catalog struct {
	ops    []Operation
	byName map[string]int
}

// Load parses the embedded declarations.
func Load() (*Catalog, error) {
	return Parse(operationsYAML)
}

// MustLoad is like Load but panics on error. The embedded declarations are
// covered by tests, so this only fails on a broken build.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

type document struct {
	Operations []Operation `yaml:"operations"`
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		ops:    make([]Operation, 0, len(doc.Operations)),
		byName: make(map[string]int, len(doc.Operations)),
	}
	for _, op := range doc.Operations {
		if err := validateOperation(op); err != nil {
			return nil, err
		}
		for _, name := range append([]string{op.Name}, op.Aliases...) {
			if _, dup := c.byName[name]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateOperation, name)
			}
			c.byName[name] = len(c.ops)
		}
		c.ops = append(c.ops, op)
	}
	return c, nil
}

func validateOperation(op Operation) error {
	if strings.TrimSpace(op.Name) == "" {
		return fmt.Errorf("%w: operation without name", ErrInvalidCatalog)
	}
	switch op.Category {
	case CategorySearch, CategorySort, CategoryArith:
	default:
		return fmt.Errorf("%w: %s: unknown category %q", ErrInvalidCatalog, op.Name, op.Category)
	}
	seen := make(map[string]bool, len(op.Inputs))
	for _, p := range op.Inputs {
		if p.Name == "" || !p.Kind.Valid() {
			return fmt.Errorf("%w: %s: input %q has kind %q", ErrInvalidCatalog, op.Name, p.Name, p.Kind)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %s: input %q declared twice", ErrInvalidCatalog, op.Name, p.Name)
		}
		seen[p.Name] = true
	}
	for _, p := range op.Outputs {
		if !p.Kind.Valid() {
			return fmt.Errorf("%w: %s: output %q has kind %q", ErrInvalidCatalog, op.Name, p.Name, p.Kind)
		}
	}
	return nil
}

// Lookup returns the operation registered under name or one of its aliases.
func (c *Catalog) Lookup(name string) (Operation, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Operation{}, false
	}
	return c.ops[i], true
}

// Operations returns every declaration in file order.
func (c *Catalog) Operations() []Operation {
	out := make([]Operation, len(c.ops))
	copy(out, c.ops)
	return out
}

// Len returns the number of operations.
func (c *Catalog) Len() int { return len(c.ops) }
