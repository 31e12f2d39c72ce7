package factors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Registry is an immutable, versioned set of emission factor tables.
// Build one with New, Default, Load or Parse.
type Registry struct {
	name    string
	version *semver.Version
	tables  map[Domain]map[string]EmissionFactor
	labels  map[Domain]map[string]string // lower-cased label -> key
}

// Option is one selectable variant of a domain, for rendering choice lists.
type Option struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Factor EmissionFactor `json:"factor"`
}

// New builds a Registry from raw tables keyed by domain and variant key.
//
// Keys are canonicalised (country codes upper-case, other keys lower snake
// case). Every problem found is reported at once, joined:
//   - ErrInvalidVersion when version is not semver
//   - ErrUnknownDomain for a table outside AllDomains
//   - ErrUnknownFactorKey for a key outside the domain's enumeration
//   - ErrInvalidFactor for a factor failing Validate, or for two raw keys
//     with the same canonical form (e.g. "diesel" and "Diesel")
//   - ErrMissingFactor for each enumerated variant without an entry
func New(name, version string, tables map[Domain]map[string]EmissionFactor) (*Registry, error) {
	var errs []error

	v, err := semver.NewVersion(version)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %q: %w", ErrInvalidVersion, version, err))
	}

	for d := range tables {
		if _, parseErr := ParseDomain(string(d)); parseErr != nil {
			errs = append(errs, parseErr)
		}
	}

	reg := &Registry{
		name:    name,
		version: v,
		tables:  make(map[Domain]map[string]EmissionFactor, len(tables)),
		labels:  make(map[Domain]map[string]string, len(tables)),
	}

	for _, d := range AllDomains() {
		keys, labels := variants(d)
		known := make(map[string]bool, len(keys))
		for _, k := range keys {
			known[k] = true
		}

		table := make(map[string]EmissionFactor, len(keys))
		seen := make(map[string]string, len(keys))
		for _, raw := range slices.Sorted(maps.Keys(tables[d])) {
			f := tables[d][raw]
			key := canonicalKey(d, raw)
			if !known[key] {
				errs = append(errs, fmt.Errorf("%w: %s %q is not a known variant", ErrUnknownFactorKey, d, raw))
				continue
			}
			if prev, dup := seen[key]; dup {
				errs = append(errs, fmt.Errorf("%w: %s %q duplicates %q", ErrInvalidFactor, d, raw, prev))
				continue
			}
			seen[key] = raw
			if vErr := f.Validate(); vErr != nil {
				errs = append(errs, fmt.Errorf("%s %q: %w", d, raw, vErr))
				continue
			}
			table[key] = f
		}

		for _, k := range keys {
			if _, ok := table[k]; !ok {
				errs = append(errs, fmt.Errorf("%w: %s %q", ErrMissingFactor, d, k))
			}
		}

		byLabel := make(map[string]string, len(labels))
		for k, l := range labels {
			byLabel[strings.ToLower(l)] = k
		}

		reg.tables[d] = table
		reg.labels[d] = byLabel
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

// Name returns the registry's descriptive name.
func (r *Registry) Name() string { return r.name }

// Version returns the registry's semantic version.
func (r *Registry) Version() string { return r.version.String() }

// Lookup returns the factor for key in domain.
//
// key may be the canonical key ("natural_gas", "DE") or the display label
// ("Natural Gas", "Germany"), matched case-insensitively. An unmapped key
// yields a *KeyError wrapping ErrUnknownFactorKey.
func (r *Registry) Lookup(domain Domain, key string) (EmissionFactor, error) {
	table, ok := r.tables[domain]
	if !ok {
		return EmissionFactor{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}

	if f, found := table[canonicalKey(domain, key)]; found {
		return f, nil
	}
	if k, found := r.labels[domain][strings.ToLower(strings.TrimSpace(key))]; found {
		return table[k], nil
	}

	return EmissionFactor{}, &KeyError{Domain: domain, Key: key, Suggestion: r.suggest(domain, key)}
}

// Resolve returns the canonical key for key, accepting labels like Lookup does.
func (r *Registry) Resolve(domain Domain, key string) (string, error) {
	if _, err := r.Lookup(domain, key); err != nil {
		return "", err
	}
	if k, found := r.labels[domain][strings.ToLower(strings.TrimSpace(key))]; found {
		return k, nil
	}
	return canonicalKey(domain, key), nil
}

// Fuel returns the combustion factor for a fuel type.
func (r *Registry) Fuel(f FuelType) (EmissionFactor, error) {
	return r.Lookup(DomainFuel, string(f))
}

// Grid returns the grid-average electricity factor for a country.
func (r *Registry) Grid(c Country) (EmissionFactor, error) {
	return r.Lookup(DomainElectricity, string(c))
}

// Procurement returns the spend-based factor for a procurement category.
func (r *Registry) Procurement(p ProcurementCategory) (EmissionFactor, error) {
	return r.Lookup(DomainProcurement, string(p))
}

// Travel returns the per-km factor for a travel mode.
func (r *Registry) Travel(t TravelMode) (EmissionFactor, error) {
	return r.Lookup(DomainTravel, string(t))
}

// Options lists the selectable variants of domain in enumeration order.
func (r *Registry) Options(domain Domain) ([]Option, error) {
	table, ok := r.tables[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}

	keys, labels := variants(domain)
	opts := make([]Option, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, Option{Key: k, Label: labels[k], Factor: table[k]})
	}
	return opts, nil
}

// Label returns the display label for a canonical key, or the key itself.
func (r *Registry) Label(domain Domain, key string) string {
	_, labels := variants(domain)
	return labelOr(labels[canonicalKey(domain, key)], key)
}

// suggest returns the closest known key to key, or "" when nothing is close.
func (r *Registry) suggest(domain Domain, key string) string {
	needle := strings.TrimSpace(key)
	if needle == "" {
		return ""
	}

	keys, labels := variants(domain)
	candidates := make([]string, 0, len(keys)*2) //nolint:mnd // key + label per variant
	owner := make(map[string]string, len(keys)*2) //nolint:mnd // key + label per variant
	for _, k := range keys {
		candidates = append(candidates, k, labels[k])
		owner[k] = k
		owner[labels[k]] = k
	}

	ranks := fuzzy.RankFindNormalizedFold(needle, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return owner[ranks[0].Target]
}

// canonicalKey normalises a raw key for domain.
func canonicalKey(domain Domain, raw string) string {
	key := strings.TrimSpace(raw)
	if domain == DomainElectricity {
		return strings.ToUpper(key)
	}
	key = strings.ToLower(key)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(key)
}
