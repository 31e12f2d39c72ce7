package factors

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML layout of a factor set.
//
//	name: EU baseline
//	version: 2024.1.0
//	fuel:
//	  diesel: {value: 2.676, unit: "kg CO2 / liter", source: EU MRR, year: 2024}
//	electricity:
//	  DE: {value: 0.385, unit: "kg CO2e / kWh", source: EEA, year: 2023}
type File struct {
	Name        string                    `yaml:"name"`
	Version     string                    `yaml:"version"`
	Fuel        map[string]EmissionFactor `yaml:"fuel"`
	Electricity map[string]EmissionFactor `yaml:"electricity"`
	Procurement map[string]EmissionFactor `yaml:"procurement"`
	Travel      map[string]EmissionFactor `yaml:"travel"`
}

// Load reads and validates a factor file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading factor file %s: %w", path, err)
	}

	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("factor file %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes YAML (or JSON) factor data into a validated Registry.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing factor YAML: %w", err)
	}

	return New(f.Name, f.Version, map[Domain]map[string]EmissionFactor{
		DomainFuel:        f.Fuel,
		DomainElectricity: f.Electricity,
		DomainProcurement: f.Procurement,
		DomainTravel:      f.Travel,
	})
}

// Export returns the registry as a File, suitable for yaml.Marshal.
func (r *Registry) Export() File {
	return File{
		Name:        r.name,
		Version:     r.Version(),
		Fuel:        copyTable(r.tables[DomainFuel]),
		Electricity: copyTable(r.tables[DomainElectricity]),
		Procurement: copyTable(r.tables[DomainProcurement]),
		Travel:      copyTable(r.tables[DomainTravel]),
	}
}

func copyTable(t map[string]EmissionFactor) map[string]EmissionFactor {
	out := make(map[string]EmissionFactor, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
