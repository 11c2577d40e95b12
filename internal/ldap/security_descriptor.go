package ldap

import (
	"encoding/binary"

	"github.com/go-ldap/ldap/v3"
)

const (
	// sdControlSelfRelativeDACL is the fixed control word of the default
	// descriptor (SE_DACL_PRESENT | SE_SELF_RELATIVE).
	sdControlSelfRelativeDACL uint16 = 32772

	// daclRevisionDS is the ACL revision used for directory-service ACLs.
	daclRevisionDS byte = 4

	// administratorsSID is the well-known BUILTIN\Administrators identifier
	// that owns the default descriptor.
	administratorsSID = "S-1-5-32-544"

	// SDFlagsDACLSecurityInformation requests only the owner and DACL
	// portions of nTSecurityDescriptor instead of the full descriptor.
	SDFlagsDACLSecurityInformation = 0x04

	// sdFlagsOID is LDAP_SERVER_SD_FLAGS_OID.
	sdFlagsOID = "1.2.840.113556.1.4.801"
)

// SDFlagsControl creates the LDAP_SERVER_SD_FLAGS_OID extended control with
// the given flags value, controlling which portions of nTSecurityDescriptor
// the server returns. The control value is the BER sequence
// [0x30 0x03 0x02 0x01 flags].
func SDFlagsControl(flags byte) ldap.Control {
	value := []byte{0x30, 0x03, 0x02, 0x01, flags}
	return ldap.NewControlString(sdFlagsOID, true, string(value))
}

// DefaultSecurityDescriptor builds the minimal self-relative security
// descriptor the shell attaches to objects it creates: revision 1, control
// word 32772, BUILTIN\Administrators as owner, no group, no SACL, and an
// empty DACL with revision 4. This is a fixed-shape builder, not a general
// descriptor encoder.
//
// Layout: 20-byte header, 8-byte empty ACL at offset 20, 16-byte owner SID at
// offset 28.
func DefaultSecurityDescriptor() []byte {
	ownerSID, err := StringToSID(administratorsSID)
	if err != nil {
		// The SID is a compile-time constant; this cannot fail.
		panic(err)
	}

	dacl := emptyACL()

	header := make([]byte, 20)
	header[0] = 1 // Revision
	header[1] = 0 // Sbz1
	binary.LittleEndian.PutUint16(header[2:4], sdControlSelfRelativeDACL)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(header)+len(dacl)))  // OffsetOwner
	binary.LittleEndian.PutUint32(header[8:12], 0)                             // OffsetGroup (absent)
	binary.LittleEndian.PutUint32(header[12:16], 0)                            // OffsetSacl (absent)
	binary.LittleEndian.PutUint32(header[16:20], uint32(len(header)))          // OffsetDacl

	sd := make([]byte, 0, len(header)+len(dacl)+len(ownerSID))
	sd = append(sd, header...)
	sd = append(sd, dacl...)
	sd = append(sd, ownerSID...)

	return sd
}

// emptyACL encodes an ACL with zero entries: revision, Sbz1, 16-bit size,
// 16-bit ACE count, Sbz2.
func emptyACL() []byte {
	acl := make([]byte, 8)
	acl[0] = daclRevisionDS
	acl[1] = 0 // Sbz1
	binary.LittleEndian.PutUint16(acl[2:4], 8) // AclSize: header only
	binary.LittleEndian.PutUint16(acl[4:6], 0) // AceCount
	binary.LittleEndian.PutUint16(acl[6:8], 0) // Sbz2
	return acl
}
