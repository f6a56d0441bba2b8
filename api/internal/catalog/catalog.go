// Package catalog holds the category catalog shown to clients. The core treats
// category keys as opaque strings; the catalog only supplies display names.
package catalog

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
)

const unknownName = "Uncategorized"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Catalog struct {
	Income  []Category `json:"income"`
	Expense []Category `json:"expense"`
}

// Default is the catalog used when no catalog file is configured.
func Default() *Catalog {
	return &Catalog{
		Income: []Category{
			{ID: "salary", Name: "Salary"},
			{ID: "freelance", Name: "Freelance"},
			{ID: "gift", Name: "Gift"},
			{ID: "investment", Name: "Investment"},
			{ID: "other_income", Name: "Other"},
		},
		Expense: []Category{
			{ID: "food", Name: "Food"},
			{ID: "transport", Name: "Transport"},
			{ID: "home", Name: "Home"},
			{ID: "entertainment", Name: "Entertainment"},
			{ID: "health", Name: "Health"},
			{ID: "shopping", Name: "Shopping"},
			{ID: "services", Name: "Services"},
			{ID: "education", Name: "Education"},
			{ID: "travel", Name: "Travel"},
			{ID: "other", Name: "Other"},
		},
	}
}

// Load reads a catalog from a json or yaml file.
func Load(path string) (*Catalog, error) {
	var c Catalog
	if err := conf.Load(path, &c); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks that keys are non-empty and that the income and expense
// sides do not share a key.
func (c *Catalog) Validate() error {
	seen := make(map[string]string)
	for side, list := range map[string][]Category{"income": c.Income, "expense": c.Expense} {
		for _, cat := range list {
			if strings.TrimSpace(cat.ID) == "" {
				return fmt.Errorf("catalog: empty %s category id", side)
			}
			if prev, ok := seen[cat.ID]; ok {
				return fmt.Errorf("catalog: category %q listed in both %s and %s", cat.ID, prev, side)
			}
			seen[cat.ID] = side
		}
	}

	return nil
}

// Name returns the display name of a category key.
func (c *Catalog) Name(id string) string {
	if cat, ok := c.find(id); ok {
		return cat.Name
	}

	return unknownName
}

func (c *Catalog) IsExpense(id string) bool {
	for _, cat := range c.Expense {
		if cat.ID == id {
			return true
		}
	}

	return false
}

func (c *Catalog) find(id string) (Category, bool) {
	for _, cat := range c.Income {
		if cat.ID == id {
			return cat, true
		}
	}
	for _, cat := range c.Expense {
		if cat.ID == id {
			return cat, true
		}
	}

	return Category{}, false
}
