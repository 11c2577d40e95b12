package ldap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLDAPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		code     uint16
	}{
		{
			name:     "invalid credentials",
			err:      ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials")),
			category: ErrorCategoryAuthentication,
			code:     ldap.LDAPResultInvalidCredentials,
		},
		{
			name:     "insufficient access",
			err:      ldap.NewError(ldap.LDAPResultInsufficientAccessRights, errors.New("insufficient access")),
			category: ErrorCategoryPermission,
			code:     ldap.LDAPResultInsufficientAccessRights,
		},
		{
			name:     "no such object",
			err:      ldap.NewError(ldap.LDAPResultNoSuchObject, errors.New("no such object")),
			category: ErrorCategoryNotFound,
			code:     ldap.LDAPResultNoSuchObject,
		},
		{
			name:     "invalid DN syntax",
			err:      ldap.NewError(ldap.LDAPResultInvalidDNSyntax, errors.New("invalid DN syntax")),
			category: ErrorCategoryValidation,
			code:     ldap.LDAPResultInvalidDNSyntax,
		},
		{
			name:     "server down",
			err:      ldap.NewError(ldap.LDAPResultServerDown, errors.New("server down")),
			category: ErrorCategoryServer,
			code:     ldap.LDAPResultServerDown,
		},
		{
			name:     "generic network error",
			err:      errors.New("network is unreachable"),
			category: ErrorCategoryConnection,
		},
		{
			name:     "generic password error",
			err:      errors.New("bad password"),
			category: ErrorCategoryAuthentication,
		},
		{
			name:     "unclassified",
			err:      errors.New("something else entirely"),
			category: ErrorCategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ldapErr := NewLDAPError("search", tt.err)
			require.NotNil(t, ldapErr)
			assert.Equal(t, tt.category, ldapErr.Category)
			assert.Equal(t, tt.code, ldapErr.LDAPCode)
			assert.Equal(t, "search", ldapErr.Operation)
			assert.ErrorIs(t, ldapErr, tt.err)
		})
	}
}

func TestNewLDAPError_Nil(t *testing.T) {
	assert.Nil(t, NewLDAPError("search", nil))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError("bind", nil))

	// Already-wrapped errors keep their original operation.
	inner := NewLDAPError("search", errors.New("boom"))
	wrapped := WrapError("bind", fmt.Errorf("outer: %w", inner))

	var ldapErr *LDAPError
	require.ErrorAs(t, wrapped, &ldapErr)
	assert.Equal(t, "search", ldapErr.Operation)
}

func TestErrorPredicates(t *testing.T) {
	notFound := NewLDAPError("search", ldap.NewError(ldap.LDAPResultNoSuchObject, errors.New("no such object")))
	assert.True(t, IsNotFoundError(notFound))
	assert.False(t, IsAuthenticationError(notFound))

	auth := ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("invalid credentials"))
	assert.True(t, IsAuthenticationError(auth))

	assert.True(t, IsConnectionError(errors.New("connection refused")))
	assert.False(t, IsConnectionError(nil))
}

func TestLDAPErrorMessage(t *testing.T) {
	withCode := NewLDAPError("search", ldap.NewError(ldap.LDAPResultNoSuchObject, errors.New("no such object")))
	assert.Contains(t, withCode.Error(), "LDAP search failed (code 32)")

	withoutCode := NewLDAPError("dial", errors.New("refused"))
	assert.Contains(t, withoutCode.Error(), "LDAP dial failed")
	assert.Contains(t, withoutCode.Error(), "refused")
}
