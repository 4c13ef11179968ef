package digest

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Algorithm names the hash used for a digest.
type Algorithm string

const AlgorithmXXH3 Algorithm = "xxh3"

// Digest fingerprints an uploaded archive,
// represented as "<algorithm>:<hex>".
type Digest struct {
	Algorithm Algorithm
	Sum       string
}

// Of computes the xxh3-128 digest of data.
func Of(data []byte) Digest {
	sum := xxh3.Hash128(data).Bytes()
	return Digest{Algorithm: AlgorithmXXH3, Sum: hex.EncodeToString(sum[:])}
}

func New(algorithm Algorithm, sum string) (Digest, error) {
	if err := validateAlgorithm(algorithm); err != nil {
		return Digest{}, err
	}
	sum = strings.ToLower(strings.TrimSpace(sum))
	if sum == "" {
		return Digest{}, fmt.Errorf("digest sum is required")
	}
	if _, err := hex.DecodeString(sum); err != nil {
		return Digest{}, fmt.Errorf("digest sum %q is not hex: %w", sum, err)
	}
	return Digest{Algorithm: algorithm, Sum: sum}, nil
}

func (d Digest) IsZero() bool {
	return d.Algorithm == "" && d.Sum == ""
}

func (d Digest) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s:%s", d.Algorithm, d.Sum)
}

// Equal compares digests of the same algorithm; digests of different
// algorithms never match.
func (d Digest) Equal(other Digest) bool {
	return !d.IsZero() && d.Algorithm == other.Algorithm && d.Sum == other.Sum
}

func Parse(raw string) (Digest, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Digest{}, nil
	}

	algorithm, sum, ok := strings.Cut(raw, ":")
	if !ok || strings.Contains(sum, ":") {
		return Digest{}, fmt.Errorf("invalid digest %q (expected algorithm:sum)", raw)
	}

	return New(Algorithm(algorithm), sum)
}

func validateAlgorithm(algorithm Algorithm) error {
	switch algorithm {
	case AlgorithmXXH3:
		return nil
	default:
		return fmt.Errorf("unsupported digest algorithm %q", algorithm)
	}
}
