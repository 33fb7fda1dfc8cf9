package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gowebpki/jcs"
	"github.com/pkg/errors"
	"github.com/snadboy/sbnotion/src/notion"
)

// Hash fingerprints a database schema. The JSON encoding is
// canonicalized per RFC 8785 before hashing so the digest is
// independent of member order.
func Hash(database *notion.Database) (string, error) {
	encoded, err := json.Marshal(database)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode database object")
	}

	canonical, err := jcs.Transform(encoded)
	if err != nil {
		return "", errors.Wrap(err, "failed to canonicalize database object")
	}

	digest := sha256.Sum256(canonical)
	return hex.EncodeToString(digest[:]), nil
}
