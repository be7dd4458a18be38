package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVListMap(t *testing.T) {
	var l kvList
	require.NoError(t, l.Set("noise.seed=7"))
	require.NoError(t, l.Set(" grid.rows =128"))
	require.NoError(t, l.Set("cache.name=a=b"))
	assert.Equal(t, "noise.seed=7, grid.rows =128,cache.name=a=b", l.String())

	m, err := l.Map()
	require.NoError(t, err)
	want := map[string]string{"noise.seed": "7", "grid.rows": "128", "cache.name": "a=b"}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}

	_, err = kvList{"seed"}.Map()
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{nil, "torus.json"},
		{[]string{"-seed", "3"}, "torus.json"},
		{[]string{"-config=a.json"}, "a.json"},
		{[]string{"--config", "b.json"}, "b.json"},
		{[]string{"-config"}, "torus.json"},
		{[]string{"config", "c.json"}, "torus.json"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, configPath(tc.args, "torus.json"), "%v", tc.args)
	}
}
