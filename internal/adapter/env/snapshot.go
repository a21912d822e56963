package env

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	domainService "github.com/Fluid-X/core/internal/domain/service"
)

// Compile-time check
var _ domainService.Environment = Snapshot{}

// Snapshot is an immutable copy of environment variables taken once at startup.
type Snapshot struct {
	values map[string]string
}

// NewSnapshot copies values into a new snapshot.
func NewSnapshot(values map[string]string) Snapshot {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Snapshot{values: copied}
}

// FromEnviron builds a snapshot from KEY=value pairs as returned by os.Environ.
func FromEnviron(environ []string) Snapshot {
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		values[k] = v
	}
	return Snapshot{values: values}
}

// Load reads dotenvPath (if it exists) and overlays the process environment on
// top of it, so variables exported in the shell win over the file. The process
// environment itself is left untouched.
func Load(dotenvPath string, logger *zap.Logger) (Snapshot, error) {
	logger = logger.Named("EnvLoader")

	values := map[string]string{}
	if dotenvPath != "" {
		fileValues, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			values = fileValues
			logger.Info("Loaded dotenv file", zap.String("path", dotenvPath), zap.Int("keys", len(fileValues)))
		case errors.Is(err, fs.ErrNotExist):
			logger.Debug("Dotenv file not found, using process environment only", zap.String("path", dotenvPath))
		default:
			return Snapshot{}, fmt.Errorf("failed to read dotenv file %s: %w", dotenvPath, err)
		}
	}

	for k, v := range FromEnviron(os.Environ()).values {
		values[k] = v
	}
	return Snapshot{values: values}, nil
}

// Lookup returns the value for key and whether it was set at all.
func (s Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Fingerprint digests the given keys' presence and values. Two snapshots with
// the same fingerprint for a key set resolve identically for those keys.
func (s Snapshot) Fingerprint(keys ...string) string {
	h := sha256.New()
	for _, k := range keys {
		v, ok := s.values[k]
		if ok {
			fmt.Fprintf(h, "%s=1:%d:%s;", k, len(v), v)
		} else {
			fmt.Fprintf(h, "%s=0;", k)
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
