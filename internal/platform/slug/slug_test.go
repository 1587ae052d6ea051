package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Ada Lovelace":  "ada-lovelace",
		"  J. O'Neil  ": "j-o-neil",
		"José":          "jos",
		"!!!":           "operator",
		"":              "operator",
		"night shift 2": "night-shift-2",
		"aaaaaaaaaa bbbbbbbbbb cccccccccc dddddddddd eeee": "aaaaaaaaaa-bbbbbbbbbb-cccccccccc",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in, "operator"), in)
	}
}
