package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDomain(t *testing.T) {
	valid := []string{
		"example.com",
		"www.example.com",
		"https://example.com",
		"http://example.com",
		"https://www.example.com/shop/page?id=3",
		"sub.domain.example.co.uk",
		"xn--bcher-kva.example",
		"  example.com  ",
	}
	for _, domain := range valid {
		assert.NoError(t, ValidateDomain(domain), domain)
	}

	invalid := []string{
		"",
		"   ",
		"example",
		"no spaces allowed.com oops",
		"ftp://example.com",
		"http://",
		"-leading.example.com",
	}
	for _, domain := range invalid {
		assert.ErrorIs(t, ValidateDomain(domain), ErrInvalidDomain, domain)
	}
}
