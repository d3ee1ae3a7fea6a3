// Package auth implements the identity core of the link archive: argon2id
// credential hashing, signed session tokens, the pluggable identity
// provider, and the ownership check run on every authenticated request.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"linkarchive/internal/common"
)

// Argon2id cost parameters. These are embedded into every encoded hash, so
// they can be raised later without invalidating stored credentials.
const (
	argonIterations  = 1
	argonMemoryKiB   = 64 * 1024
	argonParallelism = 4
	argonSaltLength  = 32
	argonKeyLength   = 32
)

// Hashing is deliberately expensive. The semaphore caps how many argon2
// computations run at once so a burst of logins cannot starve the rest of
// the request handling.
var hashSem = semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0)))

// HashPassword derives an argon2id hash from password with a fresh random
// salt and returns it in the standard encoded form
// ($argon2id$v=19$m=...,t=...,p=...$salt$key), which carries everything
// verification needs.
func HashPassword(ctx context.Context, password []byte) (string, error) {
	if err := hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer hashSem.Release(1)

	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := argon2.IDKey(password, salt, argonIterations, argonMemoryKiB, argonParallelism, argonKeyLength)

	b64 := base64.RawStdEncoding
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemoryKiB, argonIterations, argonParallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key))

	return encoded, nil
}

// VerifyPassword recomputes the hash using the parameters embedded in
// encoded and compares digests in constant time. A mismatch returns
// (false, nil); only a structurally corrupt stored hash returns an error,
// wrapping common.ErrBadCredentialHash.
func VerifyPassword(ctx context.Context, encoded string, password []byte) (bool, error) {
	memory, iterations, parallelism, salt, want, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	if err := hashSem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer hashSem.Release(1)

	got := argon2.IDKey(password, salt, iterations, memory, parallelism, uint32(len(want)))

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func decodeHash(encoded string) (memory, iterations uint32, parallelism uint8, salt, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		err = fmt.Errorf("%w: not an argon2id hash", common.ErrBadCredentialHash)
		return
	}

	var version int
	if _, e := fmt.Sscanf(parts[2], "v=%d", &version); e != nil || version != argon2.Version {
		err = fmt.Errorf("%w: unsupported version", common.ErrBadCredentialHash)
		return
	}

	var par uint32
	if _, e := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &par); e != nil {
		err = fmt.Errorf("%w: bad cost parameters", common.ErrBadCredentialHash)
		return
	}
	if memory == 0 || iterations == 0 || par == 0 || par > 255 {
		err = fmt.Errorf("%w: bad cost parameters", common.ErrBadCredentialHash)
		return
	}
	parallelism = uint8(par)

	b64 := base64.RawStdEncoding
	if salt, err = b64.DecodeString(parts[4]); err != nil {
		err = fmt.Errorf("%w: bad salt encoding", common.ErrBadCredentialHash)
		return
	}
	if key, err = b64.DecodeString(parts[5]); err != nil {
		err = fmt.Errorf("%w: bad key encoding", common.ErrBadCredentialHash)
		return
	}

	return
}
