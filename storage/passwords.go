package storage

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const argon2idPrefix = "$argon2id$"

// HashPassword returns the PHC-formatted argon2id hash of password.
// A value that already is a password hash (argon2id or bcrypt) is returned
// unchanged, so calling HashPassword twice never double-hashes.
func HashPassword(password string, p Argon2idParams) (string, error) {
	if IsPasswordHash(password) {
		return password, nil
	}
	return hashPasswordArgon2id(password, p)
}

// IsPasswordHash reports whether s is an encoded argon2id or bcrypt hash
func IsPasswordHash(s string) bool {
	if strings.HasPrefix(s, argon2idPrefix) {
		_, _, _, err := parseArgon2id(s)
		return err == nil
	}
	return isBcryptHash(s)
}

func isBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// verifyPassword checks password against the encoded hash. upgrade is true
// if the password matched but the hash should be recomputed with the current
// params, i.e. it is a bcrypt hash or used different argon2id params.
func verifyPassword(encoded, password string, current Argon2idParams) (ok, upgrade bool, err error) {
	if isBcryptHash(encoded) {
		if err = bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return false, false, nil
			}
			return false, false, err
		}
		return true, true, nil
	}
	ok, err = verifyPasswordArgon2id(encoded, password)
	if err != nil || !ok {
		return false, false, err
	}
	stored, err := extractArgon2idParams(encoded)
	if err != nil {
		return true, false, nil
	}
	return true, !argon2idParamsEqual(stored, current), nil
}

// hashPasswordArgon2id returns a PHC-formatted argon2id hash string
// Format: $argon2id$v=19$m=65536,t=1,p=4$<saltB64>$<hashB64>
func hashPasswordArgon2id(password string, p Argon2idParams) (string, error) {
	if p.Time == 0 {
		p = defaultArgon2idParams()
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	dk := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Parallelism, p.KeyLen)
	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	hashB64 := base64.RawStdEncoding.EncodeToString(dk)
	return fmt.Sprintf(
		"%sv=19$m=%d,t=%d,p=%d$%s$%s", argon2idPrefix, p.MemoryKiB, p.Time, p.Parallelism, saltB64, hashB64,
	), nil
}

// verifyPasswordArgon2id verifies the given password against a PHC-formatted argon2id hash
func verifyPasswordArgon2id(encoded, password string) (bool, error) {
	params, salt, hash, err := parseArgon2id(encoded)
	if err != nil {
		return false, err
	}
	dk := argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(dk, hash) == 1, nil
}

// extractArgon2idParams parses a PHC-formatted argon2id string and returns parameters
func extractArgon2idParams(encoded string) (Argon2idParams, error) {
	p, _, _, err := parseArgon2id(encoded)
	return p, err
}

// parseArgon2id parses a PHC-formatted argon2id hash and returns parameters, salt and hash bytes.
func parseArgon2id(encoded string) (Argon2idParams, []byte, []byte, error) {
	var out Argon2idParams
	if !strings.HasPrefix(encoded, argon2idPrefix) {
		return out, nil, nil, errors.Errorf("unsupported password hash format")
	}
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return out, nil, nil, errors.Errorf("invalid argon2id hash format")
	}
	if parts[2] != "v=19" {
		return out, nil, nil, errors.Errorf("unsupported argon2 version")
	}
	for _, kv := range strings.Split(parts[3], ",") {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return out, nil, nil, errors.Errorf("invalid argon2id parameter '%s'", kv)
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return out, nil, nil, errors.WithStack(err)
			}
			out.MemoryKiB = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return out, nil, nil, errors.WithStack(err)
			}
			out.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return out, nil, nil, errors.WithStack(err)
			}
			out.Parallelism = uint8(v)
		}
	}
	if out.Time == 0 || out.MemoryKiB == 0 || out.Parallelism == 0 {
		return out, nil, nil, errors.Errorf("incomplete argon2id parameters")
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return out, nil, nil, errors.WithStack(err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return out, nil, nil, errors.WithStack(err)
	}
	out.SaltLen = uint32(len(salt))
	out.KeyLen = uint32(len(hash))
	return out, salt, hash, nil
}

func argon2idParamsEqual(a, b Argon2idParams) bool {
	return a.Time == b.Time && a.MemoryKiB == b.MemoryKiB && a.Parallelism == b.Parallelism && a.KeyLen == b.KeyLen && a.SaltLen == b.SaltLen
}

func defaultArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, MemoryKiB: 64 * 1024, Parallelism: 4, KeyLen: 32, SaltLen: 16}
}
