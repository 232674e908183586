package lsystem

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyseGrowthKoch(t *testing.T) {
	stats := AnalyseGrowth(kochSpec(), 3, 0)
	require.Len(t, stats, 4)

	lengths := []int{1, 9, 49, 249}
	draws := []int{1, 5, 25, 125}
	for i, st := range stats {
		assert.Equal(t, i, st.Generation)
		assert.Equal(t, lengths[i], st.Length)
		assert.Equal(t, draws[i], st.Draws)
		assert.Zero(t, st.Branches)
	}
	assert.Zero(t, stats[0].Growth)
	assert.InDelta(t, 9.0, stats[1].Growth, 1e-9)
	assert.InDelta(t, 49.0/9.0, stats[2].Growth, 1e-9)
}

func TestAnalyseGrowthCountsBranches(t *testing.T) {
	stats := AnalyseGrowth(stochasticSpec(), 2, 3)
	require.Len(t, stats, 3)
	assert.Greater(t, stats[1].Branches, 0)
	assert.GreaterOrEqual(t, stats[2].Branches, stats[1].Branches)
}

func TestRenderGrowthChart(t *testing.T) {
	var buf bytes.Buffer
	err := RenderGrowthChart(&buf, "koch", AnalyseGrowth(kochSpec(), 2, 0))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>koch</title>")
	assert.Contains(t, buf.String(), "Growth Analysis")
}

func TestGrowthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	GrowthHandler("koch", kochSpec(), 2, 0)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Symbols")
}

func TestAnalyseGrowthNegativeGenerations(t *testing.T) {
	for _, n := range []int{-1, -2, -50} {
		stats := AnalyseGrowth(kochSpec(), n, 0)
		require.Len(t, stats, 1, "generations %d", n)
		assert.Equal(t, 0, stats[0].Generation)
		assert.Equal(t, 1, stats[0].Length)
	}

	rec := httptest.NewRecorder()
	GrowthHandler("koch", kochSpec(), -3, 0)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGrowthHandlerWritesOneDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	GrowthHandler("koch", kochSpec(), 2, 0)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotZero(t, rec.Body.Len())
	assert.Equal(t, 1, bytes.Count(rec.Body.Bytes(), []byte("<title>koch</title>")))
	assert.NotContains(t, rec.Body.String(), "Internal Server Error")
}
