package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DatasetOverride replaces the built-in location of one dataset.
// Empty fields keep the built-in value.
type DatasetOverride struct {
	File    string `yaml:"file"`
	Pattern string `yaml:"pattern"`
	Table   string `yaml:"table"`
}

// Manifest is the optional YAML file named by DATA_MANIFEST:
//
//	datasets:
//	  customers:
//	    file: Customers_2025.csv
//	    pattern: "Customers_*.{csv,zip}"
//	    table: shop.customers
type Manifest struct {
	Datasets map[string]DatasetOverride `yaml:"datasets"`
}

// LoadManifest reads and decodes a manifest file. Unknown keys are rejected
// so typos surface at startup.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	var m Manifest
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// DatasetOverrides merges the manifest (when configured) with the
// per-dataset environment settings. File names from the environment win;
// database table names fill in where the manifest names none.
// Keys are dataset keys: "customers", "orders", "order_details".
func (c *Config) DatasetOverrides() (map[string]DatasetOverride, error) {
	out := make(map[string]DatasetOverride)

	if c.Data.Manifest != "" {
		m, err := LoadManifest(c.Data.Manifest)
		if err != nil {
			return nil, err
		}
		for key, o := range m.Datasets {
			out[key] = o
		}
	}

	apply := func(key, file, table string) {
		o := out[key]
		if file != "" {
			o.File = file
		}
		if c.Database.Enabled() && o.Table == "" {
			o.Table = table
		}
		if o != (DatasetOverride{}) {
			out[key] = o
		}
	}
	apply("customers", c.Data.CustomersFile, c.Database.CustomersTable)
	apply("orders", c.Data.OrdersFile, c.Database.OrdersTable)
	apply("order_details", c.Data.OrderDetailsFile, c.Database.OrderDetailsTable)

	return out, nil
}
