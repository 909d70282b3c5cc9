package vocab

import (
	"bufio"
	"encoding/gob"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// DefaultDirCreationPerm is used when creating the cache directory.
	DefaultDirCreationPerm = os.FileMode(0755)

	// DefaultFileCreationPerm is used when creating cache files.
	DefaultFileCreationPerm = os.FileMode(0644)
)

// cacheHeader precedes the binary-marshaled matrix in a cache file.
type cacheHeader struct {
	Name string
	Itos []string
	Dim  int
}

// writeCache writes v to cachePath. It writes a uniquely named temporary file
// first and renames it, so concurrent readers never see a partial cache.
func writeCache(cachePath string, v *Vectors) (err error) {
	if err = os.MkdirAll(filepath.Dir(cachePath), DefaultDirCreationPerm); err != nil {
		return errors.Wrapf(err, "failed to create cache directory for %q", cachePath)
	}
	tmpPath := cachePath + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFileCreationPerm)
	if err != nil {
		return errors.Wrapf(err, "creating temporary cache file %q", tmpPath)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(f)
	if err = gob.NewEncoder(w).Encode(cacheHeader{Name: v.Name, Itos: v.Itos, Dim: v.Dim}); err != nil {
		return errors.Wrapf(err, "encoding cache header to %q", tmpPath)
	}
	if _, err = v.Matrix.MarshalBinaryTo(w); err != nil {
		return errors.Wrapf(err, "encoding vectors to %q", tmpPath)
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %q", tmpPath)
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "failed to close temporary cache file %q", tmpPath)
	}
	if err = os.Rename(tmpPath, cachePath); err != nil {
		return errors.Wrapf(err, "failed to move %q to %q", tmpPath, cachePath)
	}
	return nil
}

// readCache loads vectors written by writeCache.
func readCache(cachePath string) (*Vectors, error) {
	f, err := os.Open(cachePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open vectors cache %q", cachePath)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var header cacheHeader
	if err := gob.NewDecoder(r).Decode(&header); err != nil {
		return nil, errors.Wrapf(err, "failed to decode header of vectors cache %q", cachePath)
	}
	var m mat.Dense
	if _, err := m.UnmarshalBinaryFrom(r); err != nil {
		return nil, errors.Wrapf(err, "failed to decode vectors cache %q", cachePath)
	}
	if _, cols := m.Dims(); cols != header.Dim {
		return nil, errors.Wrapf(ErrInconsistentDim, "cache %q declares dimension %d but holds %d", cachePath, header.Dim, cols)
	}
	return NewVectors(header.Name, header.Itos, &m, nil)
}

func fileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}

// replaceTildeInDir replaces a leading "~" or "~user" in dir by the home directory.
func replaceTildeInDir(dir string) (string, error) {
	if !strings.HasPrefix(dir, "~") {
		return dir, nil
	}
	userName, rest, _ := strings.Cut(dir[1:], "/")
	var (
		usr *user.User
		err error
	)
	if userName == "" {
		usr, err = user.Current()
	} else {
		usr, err = user.Lookup(userName)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to lookup home directory for user in path %q", dir)
	}
	return filepath.Join(usr.HomeDir, rest), nil
}
