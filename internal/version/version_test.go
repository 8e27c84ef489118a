package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	orig := Version
	Version = v
	t.Cleanup(func() { Version = orig })
}

func withoutColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestVersion_DefaultValues(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotContains(t, Version, "\x1b[", "Version must stay plain for cache keys")
}

func TestColored_PlainWhenDisabled(t *testing.T) {
	withoutColor(t)
	for _, v := range []string{"0.1.0", "1.2.3-rc.1+build.123", "0.1.0-dev"} {
		withVersion(t, v)
		assert.Equal(t, v, Colored())
	}
}

func TestColored_Components(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })
	withVersion(t, "1.2.3-dev")

	got := Colored()
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "-dev")
	assert.NotEqual(t, Version, got)
}

func TestColored_Unparsable(t *testing.T) {
	withVersion(t, "nightly")
	assert.Equal(t, "nightly", Colored())
}
