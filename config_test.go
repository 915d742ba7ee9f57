package router

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLinks_FiltersByRouterID(t *testing.T) {
	init := "A 9601 B 9604 1\nB 9604 A 9601 1\nA 9602 C 9606 4\n"

	links, err := LoadLinks(strings.NewReader(init), "A")
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, Link{DestID: "B", Cost: 1, OutPort: 9601, DestPort: 9604}, links[0])
	assert.Equal(t, Link{DestID: "C", Cost: 4, OutPort: 9602, DestPort: 9606}, links[1])
}

func TestLoadLinks_AcceptsAllDelimiters(t *testing.T) {
	init := "A,9601<B>9604,1\n"

	links, err := LoadLinks(strings.NewReader(init), "A")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, NodeId("B"), links[0].DestID)
}

func TestLoadLinks_TooFewTokens(t *testing.T) {
	_, err := LoadLinks(strings.NewReader("A 9601 B\n"), "A")
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadLinks_NonIntegerPort(t *testing.T) {
	_, err := LoadLinks(strings.NewReader("A nine B 9604 1\n"), "A")
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadLinks_NonIntegerCost(t *testing.T) {
	_, err := LoadLinks(strings.NewReader("A 9601 B 9604 free\n"), "A")
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadLinks_NegativeCostRejected(t *testing.T) {
	_, err := LoadLinks(strings.NewReader("A 9601 B 9604 -1\n"), "A")
	require.Error(t, err)
}

func TestLoadLinks_DuplicateNeighborRejected(t *testing.T) {
	init := "A 9601 B 9604 1\nA 9602 B 9605 2\n"
	_, err := LoadLinks(strings.NewReader(init), "A")
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadLinks_NoMatchingLinesIsEmptyNotError(t *testing.T) {
	links, err := LoadLinks(strings.NewReader("B 9604 A 9601 1\n"), "A")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestLoadLinks_BlankLinesIgnored(t *testing.T) {
	init := "\n\nA 9601 B 9604 1\n\n"
	links, err := LoadLinks(strings.NewReader(init), "A")
	require.NoError(t, err)
	require.Len(t, links, 1)
}
