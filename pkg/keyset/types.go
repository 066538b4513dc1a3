// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-keyset.
//
// go-keyset is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package keyset

import "strings"

// =============================================================================
// Key Status
// =============================================================================

// KeyStatus describes whether a key may be used. The zero value is
// KeyStatusUnknown, which every validator rejects; a key must be explicitly
// assigned a status before it is usable.
type KeyStatus uint8

const (
	// KeyStatusUnknown is the uninitialized sentinel. Never valid.
	KeyStatusUnknown KeyStatus = iota

	// KeyStatusEnabled marks a key as usable for cryptographic operations.
	KeyStatusEnabled

	// KeyStatusDisabled marks a key as temporarily unusable. Disabled keys
	// keep their material and may be re-enabled.
	KeyStatusDisabled

	// KeyStatusDestroyed marks a key whose material has been deleted.
	// The record remains so the key ID is never reused.
	KeyStatusDestroyed
)

// String returns the string representation of the key status.
func (s KeyStatus) String() string {
	switch s {
	case KeyStatusEnabled:
		return "ENABLED"
	case KeyStatusDisabled:
		return "DISABLED"
	case KeyStatusDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// IsValid returns true if the status is a recognized, non-sentinel value.
func (s KeyStatus) IsValid() bool {
	switch s {
	case KeyStatusEnabled, KeyStatusDisabled, KeyStatusDestroyed:
		return true
	default:
		return false
	}
}

// ParseKeyStatus converts a string to a KeyStatus.
// Returns KeyStatusUnknown if the string is not recognized.
func ParseKeyStatus(s string) KeyStatus {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ENABLED":
		return KeyStatusEnabled
	case "DISABLED":
		return KeyStatusDisabled
	case "DESTROYED":
		return KeyStatusDestroyed
	default:
		return KeyStatusUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s KeyStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized values
// decode to KeyStatusUnknown rather than failing; validation rejects them
// later with a message that names the offending key.
func (s *KeyStatus) UnmarshalText(text []byte) error {
	*s = ParseKeyStatus(string(text))
	return nil
}

// =============================================================================
// Output Prefix Type
// =============================================================================

// OutputPrefixType identifies the scheme used to prefix ciphertexts and
// signatures so the producing key can be located during decryption or
// verification. The zero value is the invalid sentinel.
type OutputPrefixType uint8

const (
	// OutputPrefixUnknown is the uninitialized sentinel. Never valid.
	OutputPrefixUnknown OutputPrefixType = iota

	// OutputPrefixTink prepends a 5-byte prefix derived from the key ID.
	OutputPrefixTink

	// OutputPrefixLegacy prepends a 5-byte prefix and appends a zero byte
	// to the input before the primitive runs. Kept for compatibility.
	OutputPrefixLegacy

	// OutputPrefixRaw produces bare output with no prefix.
	OutputPrefixRaw

	// OutputPrefixCrunchy prepends a 5-byte prefix in the legacy format
	// without modifying the input.
	OutputPrefixCrunchy
)

// String returns the string representation of the output prefix type.
func (p OutputPrefixType) String() string {
	switch p {
	case OutputPrefixTink:
		return "TINK"
	case OutputPrefixLegacy:
		return "LEGACY"
	case OutputPrefixRaw:
		return "RAW"
	case OutputPrefixCrunchy:
		return "CRUNCHY"
	default:
		return "UNKNOWN_PREFIX"
	}
}

// IsValid returns true if the prefix type is a recognized, non-sentinel value.
func (p OutputPrefixType) IsValid() bool {
	switch p {
	case OutputPrefixTink, OutputPrefixLegacy, OutputPrefixRaw, OutputPrefixCrunchy:
		return true
	default:
		return false
	}
}

// ParseOutputPrefixType converts a string to an OutputPrefixType.
// Returns OutputPrefixUnknown if the string is not recognized.
func ParseOutputPrefixType(s string) OutputPrefixType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TINK":
		return OutputPrefixTink
	case "LEGACY":
		return OutputPrefixLegacy
	case "RAW":
		return OutputPrefixRaw
	case "CRUNCHY":
		return OutputPrefixCrunchy
	default:
		return OutputPrefixUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p OutputPrefixType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *OutputPrefixType) UnmarshalText(text []byte) error {
	*p = ParseOutputPrefixType(string(text))
	return nil
}

// =============================================================================
// Key Material Type
// =============================================================================

// KeyMaterialType describes the nature of a key's underlying material.
// The zero value is the invalid sentinel.
type KeyMaterialType uint8

const (
	// KeyMaterialUnknown is the uninitialized sentinel. Never valid.
	KeyMaterialUnknown KeyMaterialType = iota

	// KeyMaterialSymmetric is secret symmetric material (e.g. AES).
	KeyMaterialSymmetric

	// KeyMaterialAsymmetricPrivate is the private half of a key pair.
	KeyMaterialAsymmetricPrivate

	// KeyMaterialAsymmetricPublic is the public half of a key pair.
	// Public material is usable for verification without being primary.
	KeyMaterialAsymmetricPublic

	// KeyMaterialRemote is material held by a remote system (e.g. a KMS);
	// the local record carries only a reference.
	KeyMaterialRemote
)

// String returns the string representation of the key material type.
func (m KeyMaterialType) String() string {
	switch m {
	case KeyMaterialSymmetric:
		return "SYMMETRIC"
	case KeyMaterialAsymmetricPrivate:
		return "ASYMMETRIC_PRIVATE"
	case KeyMaterialAsymmetricPublic:
		return "ASYMMETRIC_PUBLIC"
	case KeyMaterialRemote:
		return "REMOTE"
	default:
		return "UNKNOWN_KEYMATERIAL"
	}
}

// IsValid returns true if the material type is a recognized, non-sentinel value.
func (m KeyMaterialType) IsValid() bool {
	switch m {
	case KeyMaterialSymmetric, KeyMaterialAsymmetricPrivate,
		KeyMaterialAsymmetricPublic, KeyMaterialRemote:
		return true
	default:
		return false
	}
}

// ParseKeyMaterialType converts a string to a KeyMaterialType.
// Returns KeyMaterialUnknown if the string is not recognized.
func ParseKeyMaterialType(s string) KeyMaterialType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SYMMETRIC":
		return KeyMaterialSymmetric
	case "ASYMMETRIC_PRIVATE":
		return KeyMaterialAsymmetricPrivate
	case "ASYMMETRIC_PUBLIC":
		return KeyMaterialAsymmetricPublic
	case "REMOTE":
		return KeyMaterialRemote
	default:
		return KeyMaterialUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m KeyMaterialType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *KeyMaterialType) UnmarshalText(text []byte) error {
	*m = ParseKeyMaterialType(string(text))
	return nil
}

// =============================================================================
// Records
// =============================================================================

// KeyData holds a key's serialized material and the metadata describing it.
type KeyData struct {
	// TypeURL identifies the key type (e.g. AES128GCMTypeURL).
	TypeURL string `json:"type_url" yaml:"type_url"`

	// Value is the serialized key material. May be empty for destroyed keys.
	Value []byte `json:"value,omitempty" yaml:"value,omitempty"`

	// KeyMaterialType describes the nature of Value.
	KeyMaterialType KeyMaterialType `json:"key_material_type" yaml:"key_material_type"`
}

// Key is a single key record within a keyset.
type Key struct {
	// KeyID identifies the key within its keyset. Unique by convention;
	// validation only enforces uniqueness among enabled primary candidates.
	KeyID uint32 `json:"key_id" yaml:"key_id"`

	// Status determines whether the key participates in operations.
	Status KeyStatus `json:"status" yaml:"status"`

	// OutputPrefixType is the output prefixing scheme for this key.
	OutputPrefixType OutputPrefixType `json:"output_prefix_type" yaml:"output_prefix_type"`

	// KeyData is the key's material descriptor. Required on a valid key.
	KeyData *KeyData `json:"key_data,omitempty" yaml:"key_data,omitempty"`
}

// Keyset is an ordered collection of keys with a designated primary.
type Keyset struct {
	// PrimaryKeyID names the key used by default for new operations.
	PrimaryKeyID uint32 `json:"primary_key_id" yaml:"primary_key_id"`

	// Keys is the ordered key sequence. Order only affects which violation
	// is reported first when several keys are malformed.
	Keys []*Key `json:"key" yaml:"key"`
}

// Clone returns a deep copy of the keyset. The copy shares no memory with
// the original, so callers may mutate it freely.
func (ks *Keyset) Clone() *Keyset {
	if ks == nil {
		return nil
	}
	out := &Keyset{
		PrimaryKeyID: ks.PrimaryKeyID,
		Keys:         make([]*Key, 0, len(ks.Keys)),
	}
	for _, k := range ks.Keys {
		out.Keys = append(out.Keys, k.clone())
	}
	return out
}

func (k *Key) clone() *Key {
	if k == nil {
		return nil
	}
	out := &Key{
		KeyID:            k.KeyID,
		Status:           k.Status,
		OutputPrefixType: k.OutputPrefixType,
	}
	if k.KeyData != nil {
		kd := &KeyData{
			TypeURL:         k.KeyData.TypeURL,
			KeyMaterialType: k.KeyData.KeyMaterialType,
		}
		if k.KeyData.Value != nil {
			kd.Value = make([]byte, len(k.KeyData.Value))
			copy(kd.Value, k.KeyData.Value)
		}
		out.KeyData = kd
	}
	return out
}

// =============================================================================
// Material-free metadata
// =============================================================================

// KeyInfo is a material-free view of a single key, safe to log or print.
type KeyInfo struct {
	KeyID            uint32           `json:"key_id" yaml:"key_id"`
	Status           KeyStatus        `json:"status" yaml:"status"`
	OutputPrefixType OutputPrefixType `json:"output_prefix_type" yaml:"output_prefix_type"`
	TypeURL          string           `json:"type_url" yaml:"type_url"`
	KeyMaterialType  KeyMaterialType  `json:"key_material_type" yaml:"key_material_type"`
}

// KeysetInfo is a material-free view of a keyset, safe to log or print.
type KeysetInfo struct {
	PrimaryKeyID uint32     `json:"primary_key_id" yaml:"primary_key_id"`
	KeyInfo      []*KeyInfo `json:"key_info" yaml:"key_info"`
}

// Info returns the material-free metadata for the keyset.
func (ks *Keyset) Info() *KeysetInfo {
	info := &KeysetInfo{
		PrimaryKeyID: ks.PrimaryKeyID,
		KeyInfo:      make([]*KeyInfo, 0, len(ks.Keys)),
	}
	for _, k := range ks.Keys {
		ki := &KeyInfo{
			KeyID:            k.KeyID,
			Status:           k.Status,
			OutputPrefixType: k.OutputPrefixType,
		}
		if k.KeyData != nil {
			ki.TypeURL = k.KeyData.TypeURL
			ki.KeyMaterialType = k.KeyData.KeyMaterialType
		}
		info.KeyInfo = append(info.KeyInfo, ki)
	}
	return info
}
