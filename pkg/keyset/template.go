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

import "fmt"

// Type URLs for the key types the manager can generate.
const (
	AESGCMTypeURL         = "type.googleapis.com/google.crypto.tink.AesGcmKey"
	Ed25519PrivateTypeURL = "type.googleapis.com/google.crypto.tink.Ed25519PrivateKey"
	Ed25519PublicTypeURL  = "type.googleapis.com/google.crypto.tink.Ed25519PublicKey"
)

// Template describes the key the manager should generate: its type, the size
// of its material, its output prefixing scheme, and the nature of the
// resulting material.
type Template struct {
	TypeURL          string
	KeySize          uint32
	OutputPrefixType OutputPrefixType
	KeyMaterialType  KeyMaterialType
}

// Validate checks the template for structural validity. Symmetric AES
// templates must request an accepted AES key size.
func (t Template) Validate() error {
	if t.TypeURL == "" {
		return fmt.Errorf("%w: template has no type URL", ErrInvalidArgument)
	}
	if !t.OutputPrefixType.IsValid() {
		return fmt.Errorf("%w: template %q has unknown prefix type",
			ErrInvalidArgument, t.TypeURL)
	}
	if !t.KeyMaterialType.IsValid() {
		return fmt.Errorf("%w: template %q has unknown key material type",
			ErrInvalidArgument, t.TypeURL)
	}
	if t.TypeURL == AESGCMTypeURL {
		if err := ValidateAESKeySize(t.KeySize); err != nil {
			return err
		}
	}
	return nil
}

// AES128GCMTemplate returns a template for a 128-bit AES-GCM key with
// Tink output prefixing.
func AES128GCMTemplate() Template {
	return Template{
		TypeURL:          AESGCMTypeURL,
		KeySize:          16,
		OutputPrefixType: OutputPrefixTink,
		KeyMaterialType:  KeyMaterialSymmetric,
	}
}

// AES256GCMTemplate returns a template for a 256-bit AES-GCM key with
// Tink output prefixing.
func AES256GCMTemplate() Template {
	return Template{
		TypeURL:          AESGCMTypeURL,
		KeySize:          32,
		OutputPrefixType: OutputPrefixTink,
		KeyMaterialType:  KeyMaterialSymmetric,
	}
}

// AES256GCMRawTemplate returns a template for a 256-bit AES-GCM key without
// output prefixing, for interop with systems that expect bare ciphertext.
func AES256GCMRawTemplate() Template {
	return Template{
		TypeURL:          AESGCMTypeURL,
		KeySize:          32,
		OutputPrefixType: OutputPrefixRaw,
		KeyMaterialType:  KeyMaterialSymmetric,
	}
}

// Ed25519Template returns a template for an Ed25519 signing key.
func Ed25519Template() Template {
	return Template{
		TypeURL:          Ed25519PrivateTypeURL,
		KeySize:          32,
		OutputPrefixType: OutputPrefixTink,
		KeyMaterialType:  KeyMaterialAsymmetricPrivate,
	}
}

// Ed25519PublicTemplate returns a template for the public half of an
// Ed25519 key pair, e.g. for verification-only keysets.
func Ed25519PublicTemplate() Template {
	return Template{
		TypeURL:          Ed25519PublicTypeURL,
		KeySize:          32,
		OutputPrefixType: OutputPrefixTink,
		KeyMaterialType:  KeyMaterialAsymmetricPublic,
	}
}
