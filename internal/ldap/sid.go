package ldap

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	objectsid "github.com/bwmarrin/go-objectsid"
	"github.com/go-ldap/ldap/v3"
)

// Active Directory stores objectSid as binary data. The decode direction uses
// go-objectsid; the encode direction is implemented here because the library
// only decodes.

// SIDToString converts a binary SID to its canonical S-1-... representation.
func SIDToString(binarySID []byte) (string, error) {
	if len(binarySID) == 0 {
		return "", fmt.Errorf("binary SID cannot be empty")
	}

	sid := objectsid.Decode(binarySID)
	return sid.String(), nil
}

// StringToSID converts a canonical S-1-... SID to its binary representation:
// revision byte, subauthority count, 48-bit big-endian authority, then each
// subauthority as little-endian uint32.
func StringToSID(sidString string) ([]byte, error) {
	parts := strings.Split(sidString, "-")
	if len(parts) < 3 || parts[0] != "S" {
		return nil, fmt.Errorf("invalid SID format: %q", sidString)
	}

	revision, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("invalid SID revision %q: %w", parts[1], err)
	}

	authority, err := strconv.ParseUint(parts[2], 10, 48)
	if err != nil {
		return nil, fmt.Errorf("invalid SID authority %q: %w", parts[2], err)
	}

	subAuthorities := parts[3:]
	if len(subAuthorities) > 15 {
		return nil, fmt.Errorf("SID has more than 15 subauthorities")
	}

	sid := make([]byte, 8+4*len(subAuthorities))
	sid[0] = byte(revision)
	sid[1] = byte(len(subAuthorities))

	var authorityBytes [8]byte
	binary.BigEndian.PutUint64(authorityBytes[:], authority)
	copy(sid[2:8], authorityBytes[2:8])

	for i, part := range subAuthorities {
		sub, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid SID subauthority %q: %w", part, err)
		}
		binary.LittleEndian.PutUint32(sid[8+4*i:], uint32(sub))
	}

	return sid, nil
}

// ExtractSID reads the objectSid attribute from an entry as canonical text.
func ExtractSID(entry *ldap.Entry) (string, error) {
	if entry == nil {
		return "", fmt.Errorf("LDAP entry cannot be nil")
	}

	raw := entry.GetRawAttributeValue("objectSid")
	if len(raw) == 0 {
		return "", fmt.Errorf("objectSid attribute not found in entry")
	}

	return SIDToString(raw)
}
