package ldap

import (
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGUIDToString(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
		wantErr  bool
	}{
		{
			name:     "mixed-endian field split",
			input:    []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
			expected: "04030201-0605-0807-090A-0B0C0D0E0F10",
		},
		{
			name:     "zero GUID",
			input:    make([]byte, 16),
			expected: "00000000-0000-0000-0000-000000000000",
		},
		{
			name:    "too short",
			input:   []byte{0x01, 0x02},
			wantErr: true,
		},
		{
			name:    "too long",
			input:   make([]byte, 17),
			wantErr: true,
		},
		{
			name:    "nil",
			input:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := GUIDToString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStringToGUID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
		wantErr  bool
	}{
		{
			name:     "uppercase canonical",
			input:    "04030201-0605-0807-090A-0B0C0D0E0F10",
			expected: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		},
		{
			name:     "lowercase accepted",
			input:    "04030201-0605-0807-090a-0b0c0d0e0f10",
			expected: []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "compact form rejected",
			input:   "0403020106050807090A0B0C0D0E0F10",
			wantErr: true,
		},
		{
			name:    "wrong group lengths",
			input:   "0403020-10605-0807-090A-0B0C0D0E0F10",
			wantErr: true,
		},
		{
			name:    "non-hex digits",
			input:   "0403020g-0605-0807-090A-0B0C0D0E0F10",
			wantErr: true,
		},
		{
			name:    "trailing garbage",
			input:   "04030201-0605-0807-090A-0B0C0D0E0F10x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := StringToGUID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGUIDRoundTrip(t *testing.T) {
	// Bytes direction: decode(encode(b)) == b.
	inputs := [][]byte{
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		{0xde, 0xad, 0xbe, 0xef, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb},
		make([]byte, 16),
	}

	for _, guidBytes := range inputs {
		text, err := GUIDToString(guidBytes)
		require.NoError(t, err)

		back, err := StringToGUID(text)
		require.NoError(t, err)
		assert.Equal(t, guidBytes, back)
	}

	// Text direction: encode(decode(s)) == s for canonical uppercase text.
	texts := []string{
		"04030201-0605-0807-090A-0B0C0D0E0F10",
		"FFFFFFFF-FFFF-FFFF-FFFF-FFFFFFFFFFFF",
		"00000000-0000-0000-0000-000000000000",
	}

	for _, text := range texts {
		guidBytes, err := StringToGUID(text)
		require.NoError(t, err)

		back, err := GUIDToString(guidBytes)
		require.NoError(t, err)
		assert.Equal(t, text, back)
	}
}

func TestExtractGUID(t *testing.T) {
	entry := &ldap.Entry{
		DN: "CN=test,DC=corp,DC=local",
		Attributes: []*ldap.EntryAttribute{
			{
				Name:       "objectGUID",
				ByteValues: [][]byte{{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}},
			},
		},
	}

	guid, err := ExtractGUID(entry)
	require.NoError(t, err)
	assert.Equal(t, "04030201-0605-0807-090A-0B0C0D0E0F10", guid)

	_, err = ExtractGUID(nil)
	assert.Error(t, err)

	_, err = ExtractGUID(&ldap.Entry{DN: "CN=empty"})
	assert.Error(t, err)
}
