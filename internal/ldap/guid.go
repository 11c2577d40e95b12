package ldap

import (
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"

	"github.com/go-ldap/ldap/v3"
)

// Active Directory stores objectGUID in a mixed-endian wire format: the first
// three fields are little-endian, the last two big-endian. The canonical text
// form is the uppercase hyphenated 8-4-4-4-12 rendering of the numeric fields.

// GUIDBytesLength is the wire size of an objectGUID value.
const GUIDBytesLength = 16

// Canonical hyphenated GUID: five hex groups of 8-4-4-4-12 digits.
var guidPattern = regexp.MustCompile(`^([0-9A-Fa-f]{8})-([0-9A-Fa-f]{4})-([0-9A-Fa-f]{4})-([0-9A-Fa-f]{4})-([0-9A-Fa-f]{4})([0-9A-Fa-f]{8})$`)

// GUIDToString converts a 16-byte objectGUID value to its canonical uppercase
// hyphenated text form.
func GUIDToString(guidBytes []byte) (string, error) {
	if len(guidBytes) != GUIDBytesLength {
		return "", fmt.Errorf("invalid GUID byte length: expected %d, got %d", GUIDBytesLength, len(guidBytes))
	}

	data1 := binary.LittleEndian.Uint32(guidBytes[0:4])
	data2 := binary.LittleEndian.Uint16(guidBytes[4:6])
	data3 := binary.LittleEndian.Uint16(guidBytes[6:8])
	data4 := binary.BigEndian.Uint16(guidBytes[8:10])
	data5 := binary.BigEndian.Uint16(guidBytes[10:12])
	data6 := binary.BigEndian.Uint32(guidBytes[12:16])

	return fmt.Sprintf("%08X-%04X-%04X-%04X-%04X%08X", data1, data2, data3, data4, data5, data6), nil
}

// StringToGUID parses a canonical hyphenated GUID (hex digits of either case)
// and re-encodes it into the 16-byte wire form. It is the exact inverse of
// GUIDToString and fails on anything that does not match the canonical
// pattern.
func StringToGUID(guidString string) ([]byte, error) {
	matches := guidPattern.FindStringSubmatch(guidString)
	if matches == nil {
		return nil, fmt.Errorf("invalid GUID format: %q", guidString)
	}

	var fields [6]uint64
	for i, group := range matches[1:] {
		v, err := strconv.ParseUint(group, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid GUID group %q: %w", group, err)
		}
		fields[i] = v
	}

	guidBytes := make([]byte, GUIDBytesLength)
	binary.LittleEndian.PutUint32(guidBytes[0:4], uint32(fields[0]))
	binary.LittleEndian.PutUint16(guidBytes[4:6], uint16(fields[1]))
	binary.LittleEndian.PutUint16(guidBytes[6:8], uint16(fields[2]))
	binary.BigEndian.PutUint16(guidBytes[8:10], uint16(fields[3]))
	binary.BigEndian.PutUint16(guidBytes[10:12], uint16(fields[4]))
	binary.BigEndian.PutUint32(guidBytes[12:16], uint32(fields[5]))

	return guidBytes, nil
}

// ExtractGUID reads the objectGUID attribute from an entry as canonical text.
func ExtractGUID(entry *ldap.Entry) (string, error) {
	if entry == nil {
		return "", fmt.Errorf("LDAP entry cannot be nil")
	}

	raw := entry.GetRawAttributeValue("objectGUID")
	if len(raw) == 0 {
		return "", fmt.Errorf("objectGUID attribute not found in entry")
	}

	return GUIDToString(raw)
}
