package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	v, err := Parse("v1.2.3-rc.1+build5")
	require.NoError(t, err)
	assert.Equal(t, &Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1", Build: "build5"}, v)
	assert.Equal(t, "1.2.3-rc.1+build5", v.String())

	_, err = Parse("1.2")
	assert.Error(t, err)
}

func TestParseSubVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/Satoshi:27.0.0/", "27.0.0"},
		{"/Satoshi:26.1/", "26.1.0"},
		{"/LitecoinCore:0.21.3/", "0.21.3"},
		{"/Satoshi:25.0.0(custom)/", "25.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := ParseSubVersion(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}

	_, err := ParseSubVersion("/btcwire:0/")
	assert.Error(t, err)
}

func TestFromClientVersion(t *testing.T) {
	assert.Equal(t, "27.1.0", FromClientVersion(270100).String())
	assert.Equal(t, "21.0.0", FromClientVersion(210000).String())
}

func TestNormalizeOrdersBothSchemes(t *testing.T) {
	min, err := Parse("0.21.0")
	require.NoError(t, err)

	old, _ := ParseSubVersion("/LitecoinCore:0.18.1/")
	modern, _ := ParseSubVersion("/Satoshi:27.0.0/")
	same, _ := ParseSubVersion("/Satoshi:0.21.0/")

	assert.True(t, old.Normalize().LessThan(min.Normalize()))
	assert.False(t, modern.Normalize().LessThan(min.Normalize()))
	assert.Equal(t, 0, same.Normalize().Compare(min.Normalize()))
	// the numeric version of 0.21.0 lands on the same point
	assert.Equal(t, 0, FromClientVersion(210000).Compare(min.Normalize()))
}

func TestCompare(t *testing.T) {
	a, _ := Parse("1.0.0-alpha")
	b, _ := Parse("1.0.0")
	c, _ := Parse("1.1.0")
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.True(t, b.LessThan(c))
	assert.Equal(t, 0, c.Compare(c))
}
