package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPostcode_TwoLetterPrefix(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "London", r.FromPostcode("SW1A 1AA"))
	assert.Equal(t, "North West", r.FromPostcode("BL1 2AB"))
	assert.Equal(t, "Scotland", r.FromPostcode("EH1 1YZ"))
	assert.Equal(t, "Wales", r.FromPostcode("CF10 1AA"))
}

func TestFromPostcode_OneLetterPrefix(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "North West", r.FromPostcode("M1 1AE"))
	assert.Equal(t, "West Midlands", r.FromPostcode("B15 2TT"))
	assert.Equal(t, "Yorkshire and The Humber", r.FromPostcode("S1 2HE"))
}

func TestFromPostcode_TwoLetterBeatsOneLetter(t *testing.T) {
	r := NewResolver()
	// BL resolves as the two-letter North West area, not as B (West Midlands).
	assert.Equal(t, "North West", r.FromPostcode("BL9 0AA"))
	// SW resolves as London, not S (Yorkshire).
	assert.Equal(t, "London", r.FromPostcode("SW4 7AB"))
}

func TestFromPostcode_CaseAndSpacing(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "London", r.FromPostcode("sw1a1aa"))
	assert.Equal(t, "North West", r.FromPostcode(" m1 1ae "))
}

func TestFromPostcode_Unknown(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "", r.FromPostcode("XX1 1XX"))
	assert.Equal(t, "", r.FromPostcode(""))
	assert.Equal(t, "", r.FromPostcode("12345"))
}

func TestFromCity(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, "North West", r.FromCity("Manchester"))
	assert.Equal(t, "London", r.FromCity("london"))
	assert.Equal(t, "Yorkshire and The Humber", r.FromCity("  Leeds  "))
	assert.Equal(t, "", r.FromCity("Atlantis"))
	assert.Equal(t, "", r.FromCity(""))
}

func TestNewResolverWithTables(t *testing.T) {
	r := NewResolverWithTables(
		map[string]string{"ZZ": "Nowhere"},
		map[string]string{"testville": "Nowhere"},
	)
	assert.Equal(t, "Nowhere", r.FromPostcode("ZZ1 1ZZ"))
	assert.Equal(t, "Nowhere", r.FromCity("Testville"))
	assert.Equal(t, "", r.FromPostcode("SW1A 1AA"))
}
