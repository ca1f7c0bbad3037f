package domain

import (
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Credential is a validated (username, password, salt) triple. Values are only
// ever constructed by the credential service after every check has passed;
// there is no unvalidated Credential reachable by callers.
type Credential struct {
	Username string
	Password string
	Salt     string
}

// NewCredential renders the caller-supplied numeric salt to its decimal text
// form, matching the representation the history fingerprints were derived from.
func NewCredential(username, password string, salt uint64) Credential {
	return Credential{
		Username: username,
		Password: password,
		Salt:     strconv.FormatUint(salt, 10),
	}
}

// Fingerprint is an opaque derived value used to detect reuse of a previously
// seen credential without storing the credential itself.
type Fingerprint []byte

// Hex renders the fingerprint in the form line-oriented stores persist.
func (f Fingerprint) Hex() string {
	return hex.EncodeToString(f)
}

// Equal compares fingerprints in constant time.
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	return subtle.ConstantTimeCompare(f, other) == 1
}

// LegacyFingerprint encodes an additive-scheme value as 8 big-endian bytes.
func LegacyFingerprint(v uint64) Fingerprint {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// ParseFingerprint decodes one history-store line. Decimal lines are the
// legacy additive format and decode to 8 big-endian bytes; anything else must
// be even-length hex. Modern fingerprints are 32 bytes (64 hex characters),
// so an all-digit hex line cannot be mistaken for a decimal one: it would
// overflow uint64 and fall through to the hex branch.
func ParseFingerprint(line string) (Fingerprint, error) {
	if line == "" {
		return nil, fmt.Errorf("empty fingerprint")
	}

	if v, err := strconv.ParseUint(line, 10, 64); err == nil {
		return LegacyFingerprint(v), nil
	}

	raw, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("not a decimal or hex fingerprint: %w", err)
	}
	return Fingerprint(raw), nil
}
