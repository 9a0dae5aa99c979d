// Package output names and writes the enriched document.
package output

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/vitalvas/oasamples/errors"
	"github.com/vitalvas/oasamples/openapi"
)

// HashToken in an output name is replaced by the document fingerprint.
const HashToken = "{hash}"

const (
	fileMode       = 0o644
	lockRetryDelay = 50 * time.Millisecond
)

// CheckName rejects output names that do not end in .json. It runs before
// the input is read.
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Config(errors.New("output file name is empty"))
	}
	if ext := filepath.Ext(name); !strings.EqualFold(ext, ".json") {
		return errors.WithHint(
			errors.Config(errors.Newf("output file %q must have a .json extension", name)),
			"only JSON output is supported",
		)
	}
	return nil
}

// Resolve expands HashToken in name using the fingerprint of doc. Names
// without the token are returned unchanged.
func Resolve(name string, doc *openapi.Document) (string, error) {
	if !strings.Contains(name, HashToken) {
		return name, nil
	}
	sum, err := doc.Fingerprint()
	if err != nil {
		return "", errors.Wrap(err, "fingerprint document")
	}
	return strings.ReplaceAll(name, HashToken, sum), nil
}

// lockPath returns the advisory lock file for path. It lives in the system
// temp directory so nothing but the output itself appears next to it.
func lockPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(os.TempDir(), "oasamples-"+hex.EncodeToString(sum[:8])+".lock")
}

// WriteFile replaces path with data atomically: the bytes go to a temporary
// file in the same directory which is then renamed over path. Concurrent
// writers to the same path are serialized by an advisory lock keyed on the
// absolute path.
func WriteFile(ctx context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)

	lock := flock.New(lockPath(path))
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return errors.IO(errors.Wrapf(err, "lock %s", path))
	}
	if !ok {
		return errors.IO(errors.Newf("lock %s: not acquired", path))
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.IO(errors.Wrapf(err, "create temporary file for %s", path))
	}
	tmpPath := tmp.Name()

	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.IO(errors.Wrapf(cause, "write %s", path))
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.IO(errors.Wrapf(err, "write %s", path))
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.IO(errors.Wrapf(err, "replace %s", path))
	}
	return nil
}
