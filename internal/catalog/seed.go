package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Price          string   `yaml:"price"`
	Category       string   `yaml:"category"`
	Image          string   `yaml:"image"`
	Specifications []string `yaml:"specifications"`
}

// LoadSeed reads the initial catalog. An empty path selects the built-in
// demo products.
func LoadSeed(path string) ([]Product, error) {
	if path == "" {
		return DecodeSeed(bytes.NewReader(defaultSeed))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	return DecodeSeed(file)
}

// DecodeSeed parses a YAML seed document.
func DecodeSeed(r io.Reader) ([]Product, error) {
	var sf seedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}

	products := make([]Product, 0, len(sf.Products))
	seen := make(map[string]struct{}, len(sf.Products))

	for i, sp := range sf.Products {
		if sp.ID == "" {
			return nil, fmt.Errorf("seed product #%d: id is required", i)
		}
		if _, dup := seen[sp.ID]; dup {
			return nil, fmt.Errorf("seed product #%d: duplicate id %q", i, sp.ID)
		}
		seen[sp.ID] = struct{}{}

		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return nil, fmt.Errorf("seed product %q: invalid price %q: %w", sp.ID, sp.Price, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("seed product %q: price cannot be negative", sp.ID)
		}

		category := Category(sp.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("seed product %q: unknown category %q", sp.ID, sp.Category)
		}

		products = append(products, Product{
			ID:             sp.ID,
			Name:           sp.Name,
			Description:    sp.Description,
			Price:          price,
			Category:       category,
			Image:          sp.Image,
			Specifications: sp.Specifications,
		})
	}

	return products, nil
}
