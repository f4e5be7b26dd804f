package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "bakery", NormalizeQuery("  Bakery \n"))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "ABC 123", NormalizeText(" ＡＢＣ　１２３\x00 "))
	assert.Equal(t, "b\tc", NormalizeText("b\tc\x07"))
}
