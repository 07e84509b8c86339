package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocommerce.in/storefront/pkg/catalog"
	"neocommerce.in/storefront/pkg/search"
)

func runLines(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	w := &lockedWriter{w: &out}
	ctrl := search.NewController(search.NewEngine(catalog.Default().Products()), time.Hour, func(v search.View) {
		printView(w, v)
	})
	defer ctrl.Close()

	require.NoError(t, driveSearch(strings.NewReader(input), ctrl, w))
	return out.String()
}

func TestDriveSearchDebouncesTyping(t *testing.T) {
	got := runLines(t, "q\nqu\nqua\nquantum\n")
	assert.Equal(t, 1, strings.Count(got, "[category="))
	assert.Contains(t, got, `Found 2 products for "quantum"`)
	assert.Contains(t, got, "Quantum Gaming Mouse")
}

func TestDriveSearchCommands(t *testing.T) {
	got := runLines(t, ":category footwear\n:sort price-low\n:sort sideways\n")
	lines := strings.Split(strings.TrimSpace(got), "\n")
	assert.Contains(t, lines[0], "[category=footwear sort=default] Showing 2 products")
	assert.Contains(t, got, "[category=footwear sort=price-low]")
	assert.Contains(t, got, `error: unknown sort mode "sideways"`)
}

func TestDriveSearchNoResults(t *testing.T) {
	got := runLines(t, "zzz\n:enter\n")
	assert.Contains(t, got, `No products found for "zzz"`)
}

func TestLoadEnvMissingFile(t *testing.T) {
	assert.NoError(t, loadEnv(t.TempDir()+"/missing.env"))
	assert.NoError(t, loadEnv(""))
}
