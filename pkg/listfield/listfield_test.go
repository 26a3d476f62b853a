package listfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]string{
		{},
		{"wifi"},
		{"wifi", "parking", "in-unit laundry"},
		{"has,comma", `has"quote`},
	}

	for _, values := range cases {
		assert.Equal(t, values, Decode(Encode(values)))
	}
}

func TestEncodeNilSlice(t *testing.T) {
	assert.Equal(t, "[]", Encode(nil))
}

func TestDecodeEmptyInput(t *testing.T) {
	assert.Equal(t, []string{}, Decode(""))
	assert.Equal(t, []string{}, Decode("   "))
	assert.Equal(t, []string{}, Decode("[]"))
	assert.Equal(t, []string{}, Decode("null"))
}

func TestDecodeMalformedFallsBackToCommaSplit(t *testing.T) {
	values, fellBack := DecodeWithFallback("a, b ,c")
	assert.True(t, fellBack)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestDecodeDropsEmptyEntries(t *testing.T) {
	assert.Equal(t, []string{"gym", "pool"}, Decode("gym,, pool ,"))
}

func TestDecodeValidJSONIsNotFallback(t *testing.T) {
	values, fellBack := DecodeWithFallback(`["a","b"]`)
	assert.False(t, fellBack)
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestNormalizeImageURLs(t *testing.T) {
	origin := "https://squareonerentals.com"

	images := NormalizeImageURLs([]string{
		"https://res.cloudinary.com/demo/image/upload/a.jpg",
		"http://example.com/b.png",
		"/foo.jpg",
		"bar.jpg",
		"",
		"  ",
	}, origin)

	assert.Equal(t, []string{
		"https://res.cloudinary.com/demo/image/upload/a.jpg",
		"http://example.com/b.png",
		"https://squareonerentals.com/foo.jpg",
		"https://squareonerentals.com/bar.jpg",
	}, images)
}

func TestNormalizeImageURLsEmptyList(t *testing.T) {
	assert.Empty(t, NormalizeImageURLs(nil, "https://squareonerentals.com"))
}
