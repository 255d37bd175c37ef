package binary

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // sha1 SRI strings are still published for old packages
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"hash"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// sriAlgorithms lists supported digests, weakest first.
var sriAlgorithms = []struct {
	name    string
	newHash func() hash.Hash
}{
	{"sha1", sha1.New},
	{"sha256", sha256.New},
	{"sha384", sha512.New384},
	{"sha512", sha512.New},
}

// Verifier handles integrity and signature checks of downloaded tarballs
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier. publicKey may be empty, in which case
// signature verification is unavailable.
func NewVerifier(publicKey string) (*Verifier, error) {
	v := &Verifier{}
	if strings.TrimSpace(publicKey) == "" {
		return v, nil
	}

	keyring, err := readKeyring(publicKey)
	if err != nil {
		return nil, err
	}
	v.keyring = keyring
	return v, nil
}

// CanVerifySignatures reports whether a keyring is loaded.
func (v *Verifier) CanVerifySignatures() bool {
	return len(v.keyring) > 0
}

// VerifyIntegrity checks data against a subresource-integrity string such as
// "sha512-<base64>". When several digests are listed only those using the
// strongest supported algorithm are considered, and any of them may match.
func (v *Verifier) VerifyIntegrity(data []byte, sri string) error {
	digests := map[string][][]byte{}
	for _, token := range strings.Fields(sri) {
		alg, value, ok := strings.Cut(token, "-")
		if !ok {
			continue
		}
		// Options after '?' are reserved by the SRI grammar
		value, _, _ = strings.Cut(value, "?")
		sum, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return fmt.Errorf("decode %s digest: %w", alg, err)
		}
		digests[alg] = append(digests[alg], sum)
	}

	for i := len(sriAlgorithms) - 1; i >= 0; i-- {
		alg := sriAlgorithms[i]
		expected, ok := digests[alg.name]
		if !ok {
			continue
		}

		h := alg.newHash()
		h.Write(data)
		actual := h.Sum(nil)

		for _, want := range expected {
			if subtle.ConstantTimeCompare(actual, want) == 1 {
				return nil
			}
		}
		return fmt.Errorf("%w: %s digest %s does not match",
			ErrIntegrityMismatch, alg.name, base64.StdEncoding.EncodeToString(actual))
	}

	return fmt.Errorf("no supported digest in integrity string %q", sri)
}

// VerifySignature checks a detached OpenPGP signature (armored or binary)
// over data.
func (v *Verifier) VerifySignature(data, signature []byte) error {
	if !v.CanVerifySignatures() {
		return fmt.Errorf("no public key configured")
	}

	// Verify signature (try armored first)
	_, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err != nil {
		// Try non-armored signature
		_, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}

	return nil
}
