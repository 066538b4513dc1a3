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

import (
	"errors"
	"strings"
	"testing"
)

// testKey builds a well-formed key for validation tests.
func testKey(id uint32, status KeyStatus, material KeyMaterialType) *Key {
	return &Key{
		KeyID:            id,
		Status:           status,
		OutputPrefixType: OutputPrefixTink,
		KeyData: &KeyData{
			TypeURL:         AESGCMTypeURL,
			Value:           []byte("material"),
			KeyMaterialType: material,
		},
	}
}

func TestValidateAESKeySize(t *testing.T) {
	tests := []struct {
		name    string
		size    uint32
		wantErr bool
	}{
		{"aes-128", 16, false},
		{"aes-256", 32, false},
		{"aes-192 rejected", 24, true},
		{"zero", 0, true},
		{"one", 1, true},
		{"17", 17, true},
		{"31", 31, true},
		{"33", 33, true},
		{"64", 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAESKeySize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAESKeySize(%d) error = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ValidateAESKeySize(%d) error = %v, want ErrInvalidArgument", tt.size, err)
			}
		})
	}
}

func TestValidateAESKeySizeMessage(t *testing.T) {
	err := ValidateAESKeySize(24)
	if err == nil {
		t.Fatal("ValidateAESKeySize(24) = nil, want error")
	}
	for _, want := range []string{"24", "16", "32"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     *Key
		wantErr string
	}{
		{
			name: "valid",
			key:  testKey(42, KeyStatusEnabled, KeyMaterialSymmetric),
		},
		{
			name: "missing key data",
			key: &Key{
				KeyID:            7,
				Status:           KeyStatusEnabled,
				OutputPrefixType: OutputPrefixTink,
			},
			wantErr: "key 7 has no key data",
		},
		{
			name: "unknown prefix",
			key: &Key{
				KeyID:            8,
				Status:           KeyStatusEnabled,
				OutputPrefixType: OutputPrefixUnknown,
				KeyData:          &KeyData{TypeURL: AESGCMTypeURL, KeyMaterialType: KeyMaterialSymmetric},
			},
			wantErr: "key 8 has unknown prefix",
		},
		{
			name: "unknown status",
			key: &Key{
				KeyID:            9,
				Status:           KeyStatusUnknown,
				OutputPrefixType: OutputPrefixRaw,
				KeyData:          &KeyData{TypeURL: AESGCMTypeURL, KeyMaterialType: KeyMaterialSymmetric},
			},
			wantErr: "key 9 has unknown status",
		},
		{
			name: "missing key data reported before unknown prefix",
			key: &Key{
				KeyID:            10,
				Status:           KeyStatusUnknown,
				OutputPrefixType: OutputPrefixUnknown,
			},
			wantErr: "key 10 has no key data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateKey() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateKey() = nil, want error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ValidateKey() error = %v, want ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateKey() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateKeyset(t *testing.T) {
	tests := []struct {
		name    string
		keyset  *Keyset
		wantErr string
	}{
		{
			name: "valid single key",
			keyset: &Keyset{
				PrimaryKeyID: 1,
				Keys:         []*Key{testKey(1, KeyStatusEnabled, KeyMaterialSymmetric)},
			},
		},
		{
			name:    "empty keyset",
			keyset:  &Keyset{PrimaryKeyID: 1},
			wantErr: "at least one key",
		},
		{
			name: "no enabled keys",
			keyset: &Keyset{
				PrimaryKeyID: 1,
				Keys:         []*Key{testKey(1, KeyStatusDisabled, KeyMaterialSymmetric)},
			},
			wantErr: "at least one ENABLED key",
		},
		{
			name: "multiple primary keys",
			keyset: &Keyset{
				PrimaryKeyID: 5,
				Keys: []*Key{
					testKey(5, KeyStatusEnabled, KeyMaterialSymmetric),
					testKey(5, KeyStatusEnabled, KeyMaterialSymmetric),
				},
			},
			wantErr: "multiple primary keys",
		},
		{
			name: "missing primary with symmetric material",
			keyset: &Keyset{
				PrimaryKeyID: 99,
				Keys:         []*Key{testKey(1, KeyStatusEnabled, KeyMaterialSymmetric)},
			},
			wantErr: "doesn't contain a valid primary key",
		},
		{
			name: "missing primary with private material",
			keyset: &Keyset{
				PrimaryKeyID: 99,
				Keys:         []*Key{testKey(1, KeyStatusEnabled, KeyMaterialAsymmetricPrivate)},
			},
			wantErr: "doesn't contain a valid primary key",
		},
		{
			name: "public only exemption",
			keyset: &Keyset{
				PrimaryKeyID: 99,
				Keys: []*Key{
					testKey(1, KeyStatusEnabled, KeyMaterialAsymmetricPublic),
					testKey(2, KeyStatusEnabled, KeyMaterialAsymmetricPublic),
				},
			},
		},
		{
			name: "public exemption broken by one symmetric key",
			keyset: &Keyset{
				PrimaryKeyID: 99,
				Keys: []*Key{
					testKey(1, KeyStatusEnabled, KeyMaterialAsymmetricPublic),
					testKey(2, KeyStatusEnabled, KeyMaterialSymmetric),
				},
			},
			wantErr: "doesn't contain a valid primary key",
		},
		{
			name: "malformed enabled key reported first",
			keyset: &Keyset{
				PrimaryKeyID: 1,
				Keys: []*Key{
					{KeyID: 3, Status: KeyStatusEnabled, OutputPrefixType: OutputPrefixTink},
					testKey(1, KeyStatusEnabled, KeyMaterialSymmetric),
				},
			},
			wantErr: "key 3 has no key data",
		},
		{
			name: "malformed disabled key skipped entirely",
			keyset: &Keyset{
				PrimaryKeyID: 1,
				Keys: []*Key{
					{KeyID: 3, Status: KeyStatusDisabled},
					testKey(1, KeyStatusEnabled, KeyMaterialSymmetric),
				},
			},
		},
		{
			name: "disabled key with primary id does not count as primary",
			keyset: &Keyset{
				PrimaryKeyID: 2,
				Keys: []*Key{
					testKey(2, KeyStatusDisabled, KeyMaterialSymmetric),
					testKey(1, KeyStatusEnabled, KeyMaterialSymmetric),
				},
			},
			wantErr: "doesn't contain a valid primary key",
		},
		{
			name: "destroyed keys ignored",
			keyset: &Keyset{
				PrimaryKeyID: 1,
				Keys: []*Key{
					testKey(1, KeyStatusEnabled, KeyMaterialSymmetric),
					testKey(2, KeyStatusDestroyed, KeyMaterialSymmetric),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKeyset(tt.keyset)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateKeyset() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateKeyset() = nil, want error containing %q", tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ValidateKeyset() error = %v, want ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateKeyset() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateKeysetIdempotent(t *testing.T) {
	ks := &Keyset{
		PrimaryKeyID: 99,
		Keys:         []*Key{testKey(1, KeyStatusEnabled, KeyMaterialSymmetric)},
	}
	first := ValidateKeyset(ks)
	for i := 0; i < 10; i++ {
		err := ValidateKeyset(ks)
		if (err == nil) != (first == nil) || (err != nil && err.Error() != first.Error()) {
			t.Fatalf("run %d: ValidateKeyset() = %v, want %v", i, err, first)
		}
	}
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		name        string
		candidate   uint32
		maxExpected uint32
		wantErr     bool
	}{
		{"zero zero", 0, 0, false},
		{"below max", 3, 5, false},
		{"equal max", 5, 5, false},
		{"above max", 6, 5, true},
		{"far above max", 100, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersion(tt.candidate, tt.maxExpected)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVersion(%d, %d) error = %v, wantErr %v",
					tt.candidate, tt.maxExpected, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVersionMessage(t *testing.T) {
	err := ValidateVersion(6, 5)
	if err == nil {
		t.Fatal("ValidateVersion(6, 5) = nil, want error")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ValidateVersion(6, 5) error = %v, want ErrInvalidArgument", err)
	}
	for _, want := range []string{"6", "[0..5]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}
