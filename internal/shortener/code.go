package shortener

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// codeLength is the number of hex characters in a short code.
const codeLength = 8

// newCode derives a short code from the URL, the current time, and a
// random salt. Collisions are possible at this length; callers must
// check the store and regenerate.
func newCode(url, userID string) string {
	input := fmt.Sprintf("%s_%s_%s_%s", url, time.Now().Format("02012006150405.000000"), userID, uuid.NewString())
	digest := sha256.Sum256([]byte(input))
	return hex.EncodeToString(digest[:])[:codeLength]
}
