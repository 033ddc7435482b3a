package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckTarget(t *testing.T) {
	testcases := []struct {
		Description string
		Host        string
		Rejected    bool
	}{
		{"loopback v4", "127.0.0.1", true},
		{"loopback v4 with port", "127.0.0.1:8080", true},
		{"private 192.168", "192.168.1.5", true},
		{"private 10", "10.20.30.40", true},
		{"private 172 range low", "172.16.0.1", true},
		{"private 172 range high", "172.31.255.254", true},
		{"localhost", "localhost", true},
		{"localhost subdomain", "foo.localhost", true},
		{"localhost uppercase", "LOCALHOST", true},
		{"ipv6 loopback", "[::1]", true},
		{"ipv6 link local", "[fe80::1]", true},
		{"unspecified", "0.0.0.0", true},
		{"public v4", "8.8.8.8", false},
		{"below 172 private range", "172.15.0.1", false},
		{"above 172 private range", "172.32.0.1", false},
		{"plain domain", "example.com", false},
		{"domain with port", "example.com:8443", false},
		{"subdomain", "blog.example.co.uk", false},
	}

	for _, tc := range testcases {
		t.Run(tc.Description, func(t *testing.T) {
			err := CheckTarget(tc.Host)
			if tc.Rejected {
				assert.ErrorIs(t, err, ErrPrivateAddress)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
