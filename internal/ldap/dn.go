package ldap

import (
	"strings"
)

// DomainNameFromDN derives the DNS domain name from a distinguished name by
// taking everything from the first domain component onward and joining the
// components with dots. Matching of "DC=" is case-insensitive.
//
// Example: "CN=Users,DC=corp,DC=example,DC=com" → "corp.example.com".
func DomainNameFromDN(dn string) string {
	idx := strings.Index(strings.ToUpper(dn), "DC=")
	if idx < 0 {
		return ""
	}

	// Replace every ",DC=" separator in the tail with a dot, then strip the
	// leading "DC=" marker.
	var b strings.Builder
	tail := dn[idx:]
	for i := 0; i < len(tail); {
		if i+4 <= len(tail) && strings.EqualFold(tail[i:i+4], ",DC=") {
			b.WriteByte('.')
			i += 4
			continue
		}
		b.WriteByte(tail[i])
		i++
	}

	return b.String()[3:]
}

// NameFromDN returns the value portion of the first relative distinguished
// name component: the text after the first "=" of the first comma-separated
// component. Returns "" when the DN has no such component.
func NameFromDN(dn string) string {
	rdn, _, _ := strings.Cut(dn, ",")
	_, value, found := strings.Cut(rdn, "=")
	if !found {
		return ""
	}
	return value
}
