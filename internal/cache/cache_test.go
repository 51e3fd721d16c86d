package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReport struct {
	File    string `json:"file"`
	Flagged bool   `json:"flagged"`
}

func TestReportRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	content := []byte("const x = 1;")
	hash := HashBytes(content)
	in := fakeReport{File: "a.js", Flagged: true}
	require.NoError(t, c.SetReport("loadevent:a.js", hash, in))

	var out fakeReport
	require.True(t, c.GetReport("loadevent:a.js", hash, &out))
	assert.Equal(t, in, out)
}

func TestHashMismatchMisses(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	require.NoError(t, c.SetReport("k", HashBytes([]byte("v1")), fakeReport{File: "a.js"}))

	var out fakeReport
	assert.False(t, c.GetReport("k", HashBytes([]byte("v2")), &out))
}

func TestDisabledCache(t *testing.T) {
	c, err := New("", 1, false)
	require.NoError(t, err)

	require.NoError(t, c.SetReport("k", "h", fakeReport{}))
	var out fakeReport
	assert.False(t, c.GetReport("k", "h", &out))
	assert.NoError(t, c.Invalidate("k"))
	assert.NoError(t, c.Clear())
}

func TestInvalidate(t *testing.T) {
	c, err := New(t.TempDir(), 1, true)
	require.NoError(t, err)

	hash := HashBytes([]byte("x"))
	require.NoError(t, c.SetReport("k", hash, fakeReport{File: "a.js"}))
	require.NoError(t, c.Invalidate("k"))

	var out fakeReport
	assert.False(t, c.GetReport("k", hash, &out))
}

func TestHashBytesStable(t *testing.T) {
	assert.Equal(t, HashBytes([]byte("abc")), HashBytes([]byte("abc")))
	assert.NotEqual(t, HashBytes([]byte("abc")), HashBytes([]byte("abd")))
}
