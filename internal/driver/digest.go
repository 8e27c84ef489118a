package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"strings"

	"tessera/internal/version"
)

// Digest is a SHA-256 value identifying a cached report.
type Digest [sha256.Size]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }

func digestOf(s string) Digest {
	return sha256.Sum256([]byte(s))
}

// combineDigest: H(content || part1 || part2 ...). Parts must be in a
// deterministic order.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// ReportKey identifies the report of analysing image with opts. Job count,
// run ID and progress sink do not change the result and are ignored.
func ReportKey(image []byte, opts Options) Digest {
	checks := slices.Clone(opts.Checks)
	slices.Sort(checks)
	return combineDigest(
		sha256.Sum256(image),
		digestOf(version.Version),
		digestOf(strings.Join(checks, ",")),
		digestOf(strings.Join(opts.Entries, ",")),
		digestOf(opts.Source),
		digestOf(strconv.Itoa(opts.MaxDiagnostics)),
	)
}
