// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente).

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"subdomain.example.com",
	"another.test.example.com",
}

// FixtureInvalidDomains contiene dominios inválidos.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"192.168.1.1",
	"-invalid.com",
	"invalid-.com",
	".example.com",
	"example..com",
	"localhost",
}

// FixtureOutOfScope contiene nombres fuera del scope de example.com.
var FixtureOutOfScope = []string{
	"notexample.com",
	"example.com.evil.net",
	"other.org",
}
