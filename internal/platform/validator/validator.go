// internal/platform/validator/validator.go
package validator

import (
	"net"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// labelRegex valida una etiqueta DNS ya convertida a ASCII:
// alfanumérica, guiones solo en el interior.
var labelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// IsDomain verifica si un string es un dominio válido según sintaxis estándar
// de hostname: etiquetas de 1-63 caracteres, longitud total <=253, caracteres
// compatibles con IDNA y al menos dos etiquetas. Soporta dominios
// internacionalizados convirtiéndolos a punycode antes de validar.
func IsDomain(domain string) bool {
	domain = NormalizeDomain(domain)
	if domain == "" {
		return false
	}

	// Conversión IDNA (Unicode -> ASCII/punycode). Rechaza caracteres no
	// representables en un hostname.
	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return false
	}

	if len(ascii) > 253 {
		return false
	}

	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if len(label) < 1 || len(label) > 63 {
			return false
		}
		if !labelRegex.MatchString(label) {
			return false
		}
	}

	// El TLD no puede ser puramente numérico (evita confundir IPs).
	tld := labels[len(labels)-1]
	if isAllDigits(tld) {
		return false
	}

	// Una IP literal no es un dominio.
	if net.ParseIP(ascii) != nil {
		return false
	}

	return true
}

// InScopeOf verifica si name es el propio baseDomain o un subdominio sintáctico
// de él. Comparación por sufijo con separador de etiqueta explícito: para
// base "example.com" acepta "a.example.com" pero rechaza "notexample.com".
func InScopeOf(name, baseDomain string) bool {
	name = NormalizeDomain(name)
	baseDomain = NormalizeDomain(baseDomain)

	if name == "" || baseDomain == "" {
		return false
	}
	if name == baseDomain {
		return true
	}
	return strings.HasSuffix(name, "."+baseDomain)
}

// NormalizeDomain normaliza un dominio a su forma canónica:
// minúsculas, sin espacios y sin punto final.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(domain, ".")
}

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(s string) bool {
	return net.ParseIP(s) != nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
