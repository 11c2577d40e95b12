package ldap

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/rs/zerolog"
)

// computerAccountSuffix is the trailing marker of machine-account
// sAMAccountNames ("WKSTN01$").
const computerAccountSuffix = "$"

// Resolver translates operator-supplied short names into directory
// attributes. Lookups tolerate the machine-account naming convention: a name
// that does not resolve as typed is retried once with the "$" suffix.
//
// Absence of a matching entry is a normal result, reported as a nil entry or
// empty string with a nil error. Directory transport errors propagate to the
// caller unmodified.
type Resolver struct {
	searcher Searcher
	baseDN   string
	logger   zerolog.Logger
}

// NewResolver creates a resolver bound to a search port and the directory
// root.
func NewResolver(searcher Searcher, baseDN string, logger zerolog.Logger) *Resolver {
	return &Resolver{
		searcher: searcher,
		baseDN:   baseDN,
		logger:   logger.With().Str("component", "resolver").Logger(),
	}
}

// ResolveAttributes resolves a short name to the first matching entry,
// requesting the given attributes. Returns (nil, nil) when nothing matches,
// including after the computer-account retry.
func (r *Resolver) ResolveAttributes(ctx context.Context, name string, attributes []string) (*ldap.Entry, error) {
	entry, err := r.searchByAccountName(ctx, name, attributes)
	if err != nil || entry != nil {
		return entry, err
	}

	if strings.HasSuffix(name, computerAccountSuffix) {
		return nil, nil
	}

	// Exactly one retry with the machine-account suffix appended.
	retryName := name + computerAccountSuffix
	entry, err = r.searchByAccountName(ctx, retryName, attributes)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		r.logger.Debug().
			Str("name", name).
			Str("corrected", retryName).
			Msg("auto-corrected computer account name")
	}
	return entry, nil
}

// searchByAccountName runs one exact-equality sAMAccountName search and
// returns the first entry, or nil when there is none.
func (r *Resolver) searchByAccountName(ctx context.Context, name string, attributes []string) (*ldap.Entry, error) {
	result, err := r.searcher.Search(ctx, &SearchRequest{
		BaseDN:     r.baseDN,
		Scope:      ScopeWholeSubtree,
		Filter:     fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(name)),
		Attributes: attributes,
	})
	if err != nil {
		return nil, err
	}
	if len(result.Entries) == 0 {
		return nil, nil
	}
	return result.Entries[0], nil
}

// ResolveDN resolves a short name to a distinguished name. Returns "" when
// no object matches.
func (r *Resolver) ResolveDN(ctx context.Context, name string) (string, error) {
	entry, err := r.ResolveAttributes(ctx, name, []string{"distinguishedName"})
	if err != nil || entry == nil {
		return "", err
	}
	return entry.DN, nil
}

// ResolveAttribute resolves a short name to a single attribute value.
// Returns "" when no object matches.
func (r *Resolver) ResolveAttribute(ctx context.Context, name, attribute string) (string, error) {
	entry, err := r.ResolveAttributes(ctx, name, []string{attribute})
	if err != nil || entry == nil {
		return "", err
	}
	return entry.GetAttributeValue(attribute), nil
}

// ResolveSID resolves a short name to the object's security identifier in
// canonical text form. Returns "" when no object matches.
func (r *Resolver) ResolveSID(ctx context.Context, name string) (string, error) {
	entry, err := r.ResolveAttributes(ctx, name, []string{"objectSid"})
	if err != nil || entry == nil {
		return "", err
	}
	return ExtractSID(entry)
}

// SIDToAccountName reverse-resolves a security identifier to the
// sAMAccountName of the first matching object. Returns "" when no object
// matches.
func (r *Resolver) SIDToAccountName(ctx context.Context, sid string) (string, error) {
	result, err := r.searcher.Search(ctx, &SearchRequest{
		BaseDN:     r.baseDN,
		Scope:      ScopeWholeSubtree,
		Filter:     fmt.Sprintf("(objectSid=%s)", ldap.EscapeFilter(sid)),
		Attributes: []string{"sAMAccountName"},
	})
	if err != nil {
		return "", err
	}
	if len(result.Entries) == 0 {
		return "", nil
	}
	return result.Entries[0].GetAttributeValue("sAMAccountName"), nil
}

// DNExists reports whether an object with the given distinguished name
// exists.
func (r *Resolver) DNExists(ctx context.Context, dn string) (bool, error) {
	result, err := r.searcher.Search(ctx, &SearchRequest{
		BaseDN:     r.baseDN,
		Scope:      ScopeWholeSubtree,
		Filter:     fmt.Sprintf("(distinguishedName=%s)", ldap.EscapeFilter(dn)),
		Attributes: []string{"objectClass"},
	})
	if err != nil {
		return false, err
	}
	return len(result.Entries) > 0, nil
}

// SecurityContext fetches the raw security descriptor and the object SID for
// a distinguished name. The search carries the SD-flags control so the
// server returns only the owner and DACL portions of the descriptor. Returns
// (nil, "", nil) when no object matches.
func (r *Resolver) SecurityContext(ctx context.Context, dn string) ([]byte, string, error) {
	result, err := r.searcher.Search(ctx, &SearchRequest{
		BaseDN:     r.baseDN,
		Scope:      ScopeWholeSubtree,
		Filter:     fmt.Sprintf("(distinguishedName=%s)", ldap.EscapeFilter(dn)),
		Attributes: []string{"nTSecurityDescriptor", "objectSid"},
		Controls:   []ldap.Control{SDFlagsControl(SDFlagsDACLSecurityInformation)},
	})
	if err != nil {
		return nil, "", err
	}
	if len(result.Entries) == 0 {
		return nil, "", nil
	}

	entry := result.Entries[0]
	descriptor := entry.GetRawAttributeValue("nTSecurityDescriptor")

	sid, err := ExtractSID(entry)
	if err != nil {
		return nil, "", fmt.Errorf("object %s: %w", dn, err)
	}

	return descriptor, sid, nil
}
