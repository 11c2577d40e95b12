/*
Package ldap provides the Active Directory access layer for the interactive
shell.

The package is organized into a few cooperating pieces:

  - Client: a single authenticated LDAP connection with simple, NTLM and
    Kerberos binds, plain and paged searches, and RootDSE discovery of the
    default naming context
  - Resolver: short-name to directory-attribute resolution, including the
    automatic computer-account ("name$") retry, SID reverse lookups and
    security-descriptor fetches
  - Codec helpers: the mixed-endian objectGUID wire format, binary SID
    conversion and the minimal default security-descriptor builder

The shell drives everything synchronously from one input loop, so the client
wraps exactly one connection and performs no pooling. Directory errors carry
category and LDAP result-code context through LDAPError; "no matching entry"
is never an error here, it is a nil/empty result.
*/
package ldap
