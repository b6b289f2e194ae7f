package enum

import (
	"encoding/json"
	"strings"
)

// ProductCategory classifies a catalog product
type ProductCategory int

const (
	CategoryFruta   ProductCategory = 0
	CategoryVerdura ProductCategory = 1
	CategoryOtros   ProductCategory = 2
)

var productCategoryNames = [...]string{"fruta", "verdura", "otros"}

func (c ProductCategory) String() string {
	if !c.IsValid() {
		return "otros"
	}
	return productCategoryNames[c]
}

// IsValid reports whether c is one of the known categories
func (c ProductCategory) IsValid() bool {
	return int(c) >= 0 && int(c) < len(productCategoryNames)
}

// ParseProductCategory resolves a category from its name, case-insensitively
func ParseProductCategory(s string) (ProductCategory, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range productCategoryNames {
		if name == s {
			return ProductCategory(i), true
		}
	}
	return CategoryOtros, false
}

// ProductCategories returns every category in declaration order
func ProductCategories() []ProductCategory {
	return []ProductCategory{CategoryFruta, CategoryVerdura, CategoryOtros}
}

func (c ProductCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
