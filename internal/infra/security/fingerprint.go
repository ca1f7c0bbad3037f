package security

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/arklim/credcheck/internal/core/domain"
)

var errInvalidConfig = errors.New("argon2: invalid configuration")

// Argon2Config defines tunable parameters for Argon2id fingerprint derivation.
type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultArgon2Config returns the library default Argon2id configuration.
func DefaultArgon2Config() Argon2Config {
	return Argon2Config{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 4,
		KeyLength:   32,
	}
}

func validateArgon2Config(cfg Argon2Config) error {
	if cfg.Memory < 8*1024 {
		return fmt.Errorf("%w: memory must be at least 8192", errInvalidConfig)
	}
	if cfg.Iterations == 0 {
		return fmt.Errorf("%w: iterations must be greater than zero", errInvalidConfig)
	}
	if cfg.Parallelism == 0 {
		return fmt.Errorf("%w: parallelism must be greater than zero", errInvalidConfig)
	}
	if cfg.KeyLength < 16 {
		return fmt.Errorf("%w: key length must be at least 16 bytes", errInvalidConfig)
	}
	return nil
}

// Argon2Fingerprinter derives fingerprints with Argon2id. Unlike password
// hashing, the salt is not random: it is derived from the username and the
// caller-supplied salt so that equal credentials always produce equal
// fingerprints and the history lookup stays meaningful.
type Argon2Fingerprinter struct {
	cfg Argon2Config
}

// NewArgon2Fingerprinter validates the configuration and constructs a fingerprinter.
func NewArgon2Fingerprinter(cfg Argon2Config) (*Argon2Fingerprinter, error) {
	if err := validateArgon2Config(cfg); err != nil {
		return nil, err
	}
	return &Argon2Fingerprinter{cfg: cfg}, nil
}

// Scheme implements port.Fingerprinter.
func (f *Argon2Fingerprinter) Scheme() string {
	return "argon2id"
}

// Fingerprint implements port.Fingerprinter.
func (f *Argon2Fingerprinter) Fingerprint(cred domain.Credential) (domain.Fingerprint, error) {
	if f == nil {
		return nil, fmt.Errorf("argon2 fingerprinter not configured")
	}

	seed := sha256.Sum256([]byte(cred.Username + "\x00" + cred.Salt))
	sum := argon2.IDKey([]byte(cred.Password), seed[:16], f.cfg.Iterations, f.cfg.Memory, f.cfg.Parallelism, f.cfg.KeyLength)
	return domain.Fingerprint(sum), nil
}

// LegacyAdditiveFingerprinter reproduces the additive length-weighted scheme
// older history files were written with. It is collision-prone by
// construction and only exists so those files remain checkable; new
// deployments should use Argon2id.
type LegacyAdditiveFingerprinter struct{}

// NewLegacyAdditiveFingerprinter constructs the legacy fingerprinter.
func NewLegacyAdditiveFingerprinter() *LegacyAdditiveFingerprinter {
	return &LegacyAdditiveFingerprinter{}
}

// Scheme implements port.Fingerprinter.
func (f *LegacyAdditiveFingerprinter) Scheme() string {
	return "legacy"
}

// Fingerprint implements port.Fingerprinter.
func (f *LegacyAdditiveFingerprinter) Fingerprint(cred domain.Credential) (domain.Fingerprint, error) {
	v := uint64(len(cred.Username)) + 3*uint64(len(cred.Password)) + 7*uint64(len(cred.Salt))
	return domain.LegacyFingerprint(v), nil
}
