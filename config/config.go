package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hypermart/core/types"
)

// Config carries the service settings and the product catalogue. The
// catalogue lives in configuration because it is session state: it is never
// persisted alongside the accounts.
type Config struct {
	Service   string         `toml:"Service"`
	Env       string         `toml:"Env"`
	StoreFile string         `toml:"StoreFile"`
	Products  []ProductEntry `toml:"Product"`
}

// ProductEntry is one catalogue item as declared in the TOML file.
type ProductEntry struct {
	Company     string    `toml:"Company"`
	Title       string    `toml:"Title"`
	Category    string    `toml:"Category"`
	Prices      []float64 `toml:"Prices"`
	MaxDiscount float64   `toml:"MaxDiscount"`
}

// Load loads the configuration from the given path. A missing file is
// populated with a commented default configuration carrying the demo
// catalogue.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Service) == "" {
		c.Service = "hypermart"
	}
	if strings.TrimSpace(c.StoreFile) == "" {
		c.StoreFile = "users.txt"
	}
}

// Validate performs static validation of the configuration, including every
// catalogue entry.
func (c *Config) Validate() error {
	if strings.ContainsRune(c.StoreFile, '\n') {
		return fmt.Errorf("config: invalid store file path %q", c.StoreFile)
	}
	titles := make(map[string]struct{}, len(c.Products))
	for i := range c.Products {
		product := c.Products[i].product()
		if err := product.Validate(); err != nil {
			return fmt.Errorf("config: product %d: %w", i, err)
		}
		if _, dup := titles[product.Title]; dup {
			return fmt.Errorf("config: duplicate product title %q", product.Title)
		}
		titles[product.Title] = struct{}{}
	}
	return nil
}

// Catalog converts the configured entries into validated products.
func (c *Config) Catalog() ([]types.Product, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := make([]types.Product, 0, len(c.Products))
	for i := range c.Products {
		out = append(out, c.Products[i].product())
	}
	return out, nil
}

func (e *ProductEntry) product() types.Product {
	return types.Product{
		Company:     e.Company,
		Title:       e.Title,
		Category:    e.Category,
		Prices:      append([]float64(nil), e.Prices...),
		MaxDiscount: e.MaxDiscount,
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := &Config{
		Service:   "hypermart",
		StoreFile: "users.txt",
		Products:  DefaultCatalog(),
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// DefaultCatalog returns the built-in demo catalogue.
func DefaultCatalog() []ProductEntry {
	return []ProductEntry{
		{Company: "Samsung", Title: "Washing Machine", Category: types.CategoryHouseholdAppliance, Prices: []float64{500}, MaxDiscount: 0.10},
		{Company: "Philips", Title: "Vacuum Cleaner", Category: types.CategoryHouseholdAppliance, Prices: []float64{150}, MaxDiscount: 0.20},
		{Company: "Canon", Title: "Digital Camera", Category: types.CategoryCamera, Prices: []float64{300}, MaxDiscount: 0.15},
		{Company: "Nikon", Title: "DSLR Camera", Category: types.CategoryCamera, Prices: []float64{800}, MaxDiscount: 0.25},
		{Company: "HP", Title: "Laptop", Category: types.CategoryLaptop, Prices: []float64{1000, 1250}, MaxDiscount: 0.20},
	}
}
