// Package completer implements the type-aware interactive completion engine
// for directory objects. Each supported object category is described by an
// ObjectTypeSpec value; one generic engine serves all of them.
package completer

// HighlightColor tags every candidate of an object category for display
// styling. The vocabulary is the ANSI bright palette; rendering is the
// shell's concern.
type HighlightColor string

const (
	ColorBrightGreen   HighlightColor = "bright-green"
	ColorBrightRed     HighlightColor = "bright-red"
	ColorBrightYellow  HighlightColor = "bright-yellow"
	ColorBrightMagenta HighlightColor = "bright-magenta"
)

// ObjectTypeSpec describes one directory object category: how to find its
// objects, which attribute names them, and how to style its suggestions.
// Instances are immutable and defined at startup; there is no dynamic
// registration.
type ObjectTypeSpec struct {
	Name              string         // Cache key and display label
	Filter            string         // LDAP filter selecting the category
	PrimaryAttribute  string         // Preferred display-name attribute
	FallbackAttribute string         // Used when the primary is absent
	Attributes        []string       // Attributes requested from the directory
	HighlightColor    HighlightColor // Whole-candidate display styling
}

// The four supported object categories.
var (
	Users = ObjectTypeSpec{
		Name:              "users",
		Filter:            "(&(objectCategory=person)(objectClass=user))",
		PrimaryAttribute:  "sAMAccountName",
		FallbackAttribute: "name",
		Attributes:        []string{"sAMAccountName", "name"},
		HighlightColor:    ColorBrightGreen,
	}

	Computers = ObjectTypeSpec{
		Name:              "computers",
		Filter:            "(objectClass=computer)",
		PrimaryAttribute:  "sAMAccountName",
		FallbackAttribute: "name",
		Attributes:        []string{"sAMAccountName", "name"},
		HighlightColor:    ColorBrightRed,
	}

	Groups = ObjectTypeSpec{
		Name:              "groups",
		Filter:            "(objectClass=group)",
		PrimaryAttribute:  "sAMAccountName",
		FallbackAttribute: "name",
		Attributes:        []string{"sAMAccountName", "name"},
		HighlightColor:    ColorBrightYellow,
	}

	OrgUnits = ObjectTypeSpec{
		Name:              "ous",
		Filter:            "(objectClass=organizationalUnit)",
		PrimaryAttribute:  "name",
		FallbackAttribute: "distinguishedName",
		Attributes:        []string{"name", "distinguishedName"},
		HighlightColor:    ColorBrightMagenta,
	}
)
