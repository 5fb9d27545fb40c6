package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KelvinH2322/coffeehelper/pkg/adapters/memory"
	"github.com/KelvinH2322/coffeehelper/pkg/adapters/sqlite"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/guides"
)

func seededCatalog(t *testing.T) *sqlite.Catalog {
	t.Helper()
	catalog, err := sqlite.Open(filepath.Join(t.TempDir(), "guides.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })

	require.NoError(t, catalog.Seed(memory.SeedGuides()))
	return catalog
}

func TestCatalog_LookupRoundTrip(t *testing.T) {
	catalog := seededCatalog(t)

	g, err := catalog.Lookup("guide-001")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryCleaning, g.Category)
	assert.Len(t, g.Steps, 3)
	assert.Equal(t, []string{"Cleaning brush", "Microfiber cloth"}, g.Tools)
	assert.NotEmpty(t, g.SafetyAlerts)
	assert.Equal(t, "https://picsum.photos/seed/steamwand/300/200", g.Steps[2].ImageURL)
}

func TestCatalog_LookupMissing(t *testing.T) {
	catalog := seededCatalog(t)
	_, err := catalog.Lookup("guide-999")
	assert.ErrorIs(t, err, domain.ErrGuideNotFound)
}

func TestCatalog_ListFilters(t *testing.T) {
	catalog := seededCatalog(t)

	assert.Len(t, catalog.List(domain.GuideFilter{}), 4)

	repairs := catalog.List(domain.GuideFilter{Category: domain.CategoryRepair})
	require.Len(t, repairs, 1)
	assert.Equal(t, "guide-003", repairs[0].ID)

	gaggia := catalog.List(domain.GuideFilter{Brand: "Gaggia", Model: "Classic Pro"})
	require.Len(t, gaggia, 1)
	assert.Equal(t, "guide-003", gaggia[0].ID)
}

func TestCatalog_SeedReplaces(t *testing.T) {
	catalog := seededCatalog(t)

	require.NoError(t, catalog.Seed([]domain.Guide{{
		ID: "guide-only", Title: "Only", Category: domain.CategoryRepair,
		MachineBrand: "Gaggia", MachineModel: domain.GenericMachine,
	}}))

	assert.Len(t, catalog.List(domain.GuideFilter{}), 1)
}

func TestCatalog_WorksWithResolver(t *testing.T) {
	// The resolver only sees the ports.GuideCatalog interface; the sqlite
	// implementation must drive the same fallback chain as the memory one.
	catalog := seededCatalog(t)

	machine := &domain.Machine{Brand: "Gaggia", Model: "Classic Pro"}
	g, ok := guides.Resolve(catalog, "guide-003", machine)
	require.True(t, ok)
	assert.Equal(t, "guide-003", g.ID)
}
