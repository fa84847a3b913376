package tres

import (
	"strings"

	"github.com/google/uuid"
)

// UIDScheme is the scheme of resource uids.
const UIDScheme = "uid://"

// uidHexLen is the number of random hex characters in a generated uid.
const uidHexLen = 12

// GenerateUID returns a new uid of the form uid://<prefix>_<12 hex digits>.
// The digits are random; no registry of issued uids is kept.
func GenerateUID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return UIDScheme + prefix + "_" + hex[:uidHexLen]
}
