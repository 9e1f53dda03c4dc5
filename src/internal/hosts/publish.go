package hosts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/hashing"
	"github.com/mergehosts/mergehosts/src/internal/log"
)

// RenderFunc writes the complete document to w.
type RenderFunc func(w io.Writer) error

// PublishOptions controls Publish.
type PublishOptions struct {
	// SkipUnchanged leaves the destination alone when the rendered body
	// (everything but the header) matches the checksum stored next to it.
	SkipUnchanged bool
	Logger        *log.Logger
}

// Publish renders into a scratch file in the destination directory and moves
// it over dest once rendering succeeded. The scratch file is removed on every
// path, so a failed render leaves dest untouched. It reports whether dest was
// written.
func Publish(dest string, opts PublishOptions, render RenderFunc) (bool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".mergehosts-*.hosts")
	if err != nil {
		return false, errors.NewIOError(fmt.Sprintf("failed to create temporary file for %s", dest), err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	logger.Verbosef("Temporary hosts file: %s", tmpPath)

	checksum := hashing.NewMD5WriterProxy(tmp)
	if err := render(checksum); err != nil {
		_ = tmp.Close()
		return false, err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return false, errors.NewIOError("failed to sync temporary file", err)
	}
	if err := tmp.Close(); err != nil {
		return false, errors.NewIOError("failed to close temporary file", err)
	}

	if opts.SkipUnchanged {
		changed, err := hashing.IsFileChanged(checksum, dest)
		if err != nil {
			logger.Warnf("Failed to compare %s checksum, rewriting: %v", dest, err)
		} else if !changed {
			logger.Infof("%s is not changed, skipping write", dest)
			return false, nil
		}
	}

	mode := os.FileMode(0644)
	if fi, err := os.Stat(dest); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return false, errors.NewIOError("failed to set permissions on temporary file", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		// Rename fails on bind-mounted destinations such as /etc/hosts in
		// containers; copy instead.
		logger.Verbosef("Rename to %s failed, copying: %v", dest, err)
		if err := copyFile(tmpPath, dest); err != nil {
			return false, errors.NewIOError(fmt.Sprintf("failed to publish %s", dest), err)
		}
	}

	if opts.SkipUnchanged {
		if err := hashing.WriteChecksum(checksum, dest); err != nil {
			logger.Warnf("Failed to write checksum for %s: %v", dest, err)
		}
	}

	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
