package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/engine"
	"github.com/rshade/footprint/internal/factors"
)

// Factor listing formats.
const (
	factorsFormatTable = "table"
	factorsFormatJSON  = "json"
	factorsFormatYAML  = "yaml"
)

var errYAMLWithDomain = errors.New("--output yaml exports the whole registry and cannot be combined with --domain")

// factorListing is the JSON shape of "footprint factors".
type factorListing struct {
	Registry string                              `json:"registry"`
	Version  string                              `json:"version"`
	Domains  map[factors.Domain][]factors.Option `json:"domains"`
}

// NewFactorsCmd creates the "factors" command, which lists the emission
// factors in use. The yaml format writes a complete factor file that can be
// edited and passed back with --factors.
func NewFactorsCmd() *cobra.Command {
	var domain, output string

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List emission factors",
		Example: `  footprint factors
  footprint factors --domain electricity
  footprint factors --output yaml > my-factors.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeFactors(cmd, domain, output)
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "limit to one domain: fuel, electricity, procurement, travel")
	cmd.Flags().StringVarP(&output, "output", "o", factorsFormatTable, "output format: table, json or yaml")

	return cmd
}

func executeFactors(cmd *cobra.Command, domainFlag, output string) error {
	reg, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	domains := factors.AllDomains()
	if domainFlag != "" {
		d, parseErr := factors.ParseDomain(domainFlag)
		if parseErr != nil {
			return parseErr
		}
		domains = []factors.Domain{d}
	}

	w := cmd.OutOrStdout()
	switch output {
	case factorsFormatTable:
		return writeFactorTable(w, reg, domains)
	case factorsFormatJSON:
		listing := factorListing{
			Registry: reg.Name(),
			Version:  reg.Version(),
			Domains:  make(map[factors.Domain][]factors.Option, len(domains)),
		}
		for _, d := range domains {
			opts, optErr := reg.Options(d)
			if optErr != nil {
				return optErr
			}
			listing.Domains[d] = opts
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case factorsFormatYAML:
		if domainFlag != "" {
			return errYAMLWithDomain
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd // conventional YAML indent
		if encErr := enc.Encode(reg.Export()); encErr != nil {
			return fmt.Errorf("encoding factors: %w", encErr)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q (want table, json or yaml)", engine.ErrUnsupportedFormat, output)
	}
}

func writeFactorTable(w io.Writer, reg *factors.Registry, domains []factors.Domain) error {
	if _, err := fmt.Fprintf(w, "%s (version %s)\n\n", reg.Name(), reg.Version()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	if _, err := fmt.Fprintln(tw, "DOMAIN\tKEY\tLABEL\tFACTOR\tUNIT\tSOURCE"); err != nil {
		return err
	}
	for _, d := range domains {
		opts, err := reg.Options(d)
		if err != nil {
			return err
		}
		for _, o := range opts {
			if _, err = fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\t%s\n",
				d, o.Key, o.Label, o.Factor.Value, o.Factor.Unit, o.Factor.Provenance()); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}
