package catalog

import (
	"fmt"
	"io"

	"github.com/orderhub/backend/internal/domain/shared"
	"gopkg.in/yaml.v3"
)

// PriceList is the YAML document a supplier uploads to replace its catalog.
type PriceList struct {
	Shop       string              `yaml:"shop"`
	Categories []PriceListCategory `yaml:"categories"`
	Goods      []PriceListGood     `yaml:"goods"`
}

// PriceListCategory is a category entry keyed by the supplier's numeric id
type PriceListCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// PriceListGood is one SKU line of the price list. Prices are decoded as
// floats and converted to decimals by the importer.
type PriceListGood struct {
	ID         int64             `yaml:"id"`
	Category   int64             `yaml:"category"`
	Model      string            `yaml:"model"`
	Name       string            `yaml:"name"`
	Price      float64           `yaml:"price"`
	PriceRRC   float64           `yaml:"price_rrc"`
	Quantity   int               `yaml:"quantity"`
	Parameters map[string]string `yaml:"parameters"`
}

// ParsePriceList decodes and validates a price-list document. Unknown keys
// are rejected so a malformed upload fails before any write happens.
func ParsePriceList(r io.Reader) (*PriceList, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc PriceList
	if err := dec.Decode(&doc); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", fmt.Sprintf("Malformed price list: %v", err))
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document shape before the import transaction starts
func (p *PriceList) Validate() error {
	if p.Shop == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Price list is missing the shop name")
	}

	categories := make(map[int64]struct{}, len(p.Categories))
	for i, c := range p.Categories {
		if c.ID <= 0 || c.Name == "" {
			return shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Category %d must have a positive id and a name", i+1))
		}
		categories[c.ID] = struct{}{}
	}

	for i, g := range p.Goods {
		if g.Name == "" {
			return shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Good %d is missing a name", i+1))
		}
		if _, ok := categories[g.Category]; !ok {
			return shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Good %q references unknown category %d", g.Name, g.Category))
		}
		if g.Price < 0 || g.PriceRRC < 0 {
			return shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Good %q has a negative price", g.Name))
		}
		if g.Quantity < 0 {
			return shared.NewDomainError("VALIDATION_FAILED",
				fmt.Sprintf("Good %q has a negative quantity", g.Name))
		}
	}

	return nil
}
