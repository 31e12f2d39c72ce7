package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/footprint/internal/factors"
)

func TestFactorsCmd_Table(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := executeCmd(t, "factors", "--domain", "electricity")
	require.NoError(t, err)
	assert.Contains(t, stdout, "EU baseline (version 2024.1.0)")
	assert.Contains(t, stdout, "DOMAIN")
	assert.Contains(t, stdout, "electricity")
	assert.NotContains(t, stdout, "natural_gas")
}

func TestFactorsCmd_JSON(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := executeCmd(t, "factors", "-o", "json")
	require.NoError(t, err)

	var listing struct {
		Registry string                              `json:"registry"`
		Version  string                              `json:"version"`
		Domains  map[factors.Domain][]factors.Option `json:"domains"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &listing))
	assert.Equal(t, factors.DefaultName, listing.Registry)
	assert.Len(t, listing.Domains, len(factors.AllDomains()))
	require.Len(t, listing.Domains[factors.DomainTravel], len(factors.AllTravelModes()))
	assert.Equal(t, string(factors.AllTravelModes()[0]), listing.Domains[factors.DomainTravel][0].Key)
}

func TestFactorsCmd_YAMLRoundTrips(t *testing.T) {
	setupCLITest(t)

	stdout, _, err := executeCmd(t, "factors", "-o", "yaml")
	require.NoError(t, err)

	reg, err := factors.Parse([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, factors.Default().Version(), reg.Version())

	var file factors.File
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &file))
	assert.Len(t, file.Fuel, len(factors.AllFuelTypes()))
}

func TestFactorsCmd_Errors(t *testing.T) {
	setupCLITest(t)

	_, _, err := executeCmd(t, "factors", "--domain", "water")
	assert.ErrorIs(t, err, factors.ErrUnknownDomain)

	_, _, err = executeCmd(t, "factors", "--domain", "fuel", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--domain")

	_, _, err = executeCmd(t, "factors", "-o", "csv")
	require.Error(t, err)
}
