// internal/platform/validator/validator_test.go
package validator

import (
	"strings"
	"testing"

	"scopetree/internal/testutil"
)

func TestIsDomain_Valid(t *testing.T) {
	for _, domain := range testutil.FixtureDomains {
		testutil.AssertTrue(t, IsDomain(domain), domain)
	}

	extra := []string{
		"EXAMPLE.COM",
		"  example.com  ",
		"example.com.",
		"a.b.c.d.example.com",
		"xn--bcher-kva.example",
		"münchen.de",
		"sub-domain.example.com",
	}
	for _, domain := range extra {
		testutil.AssertTrue(t, IsDomain(domain), domain)
	}
}

func TestIsDomain_Invalid(t *testing.T) {
	for _, domain := range testutil.FixtureInvalidDomains {
		testutil.AssertFalse(t, IsDomain(domain), domain)
	}

	extra := []string{
		"::1",
		"example.1234",
		"under_score.example.com",
		strings.Repeat("a", 64) + ".example.com",
		strings.Repeat("long.", 60) + "example.com",
	}
	for _, domain := range extra {
		testutil.AssertFalse(t, IsDomain(domain), domain)
	}
}

func TestInScopeOf(t *testing.T) {
	tests := []struct {
		name string
		base string
		want bool
	}{
		{name: "example.com", base: "example.com", want: true},
		{name: "a.example.com", base: "example.com", want: true},
		{name: "deep.a.example.com", base: "example.com", want: true},
		{name: "A.EXAMPLE.COM", base: "example.com", want: true},
		{name: "a.example.com.", base: "example.com", want: true},

		// Substring sin separador de etiqueta: fuera de scope.
		{name: "notexample.com", base: "example.com", want: false},
		{name: "example.com.evil.net", base: "example.com", want: false},
		{name: "other.org", base: "example.com", want: false},
		{name: "", base: "example.com", want: false},
		{name: "a.example.com", base: "", want: false},
	}

	for _, tt := range tests {
		got := InScopeOf(tt.name, tt.base)
		testutil.AssertEqual(t, got, tt.want, tt.name+" in "+tt.base)
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "EXAMPLE.COM", want: "example.com"},
		{in: "  example.com  ", want: "example.com"},
		{in: "example.com.", want: "example.com"},
		{in: "  A.B.Example.COM.  ", want: "a.b.example.com"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, NormalizeDomain(tt.in), tt.want, tt.in)
	}
}

func TestIsIP(t *testing.T) {
	testutil.AssertTrue(t, IsIP("192.168.1.1"), "ipv4")
	testutil.AssertTrue(t, IsIP("::1"), "ipv6")
	testutil.AssertFalse(t, IsIP("example.com"), "hostname")
	testutil.AssertFalse(t, IsIP(""), "empty")
}
