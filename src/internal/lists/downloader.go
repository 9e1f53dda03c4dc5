package lists

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mergehosts/mergehosts/src/internal/config"
	"github.com/mergehosts/mergehosts/src/internal/errors"
	"github.com/mergehosts/mergehosts/src/internal/hashing"
	"github.com/mergehosts/mergehosts/src/internal/hosts"
	"github.com/mergehosts/mergehosts/src/internal/log"
)

const userAgent = "mergehosts"

// DefaultClient is used when Downloader.Client is nil.
var DefaultClient = &http.Client{Timeout: 60 * time.Second}

// Downloader fetches the external hosts list.
type Downloader struct {
	Client *http.Client
	Logger *log.Logger
}

// DownloadExternal downloads external.url into the lists directory.
// Returns (changed, error) where changed indicates if the file was updated.
// A list with a malformed line is rejected and the previous copy is kept.
func (d *Downloader) DownloadExternal(ctx context.Context, cfg *config.Config) (bool, error) {
	url := cfg.External.URL
	if url == "" {
		return false, errors.NewListError("external list has no URL configured", nil)
	}

	logger := d.Logger
	if logger == nil {
		logger = log.Discard()
	}
	client := d.Client
	if client == nil {
		client = DefaultClient
	}

	listsDir := cfg.GetAbsListsDir()
	if err := os.MkdirAll(listsDir, 0755); err != nil {
		return false, errors.NewListError("failed to create lists directory", err)
	}

	logger.Infof("Downloading external list from URL: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, errors.NewListError(fmt.Sprintf("invalid URL %s", url), err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, errors.NewListError("failed to download external list", err)
	}
	defer resp.Body.Close()
	bodyProxy := hashing.NewMD5ReaderProxy(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return false, errors.NewListError(fmt.Sprintf("failed to download external list: %s", resp.Status), nil)
	}

	content, err := io.ReadAll(bodyProxy)
	if err != nil {
		return false, errors.NewListError("failed to read response for external list", err)
	}

	count, err := hosts.CheckTuples(hosts.KindExternal, hosts.Source{Name: url, Reader: bytes.NewReader(content)})
	if err != nil {
		return false, errors.NewListError("downloaded external list is not a hosts file", err)
	}

	filePath := cfg.GetAbsDownloadedExternalPath()
	if cfg.External.File != "" {
		logger.Warnf("external.file is set, %s is not used until it is removed from the configuration", filePath)
	}

	if changed, err := hashing.IsFileChanged(bodyProxy, filePath); err != nil {
		logger.Errorf("Failed to calculate external list checksum: %v", err)
	} else if !changed {
		logger.Infof("External list is not changed, skipping write to disk")
		return false, nil
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return false, errors.NewListError(fmt.Sprintf("failed to write list file to %s", filePath), err)
	}
	if err := hashing.WriteChecksum(bodyProxy, filePath); err != nil {
		return false, errors.NewListError("failed to write list checksum", err)
	}

	logger.Infof("External list downloaded successfully (%d host entries) to %s", count, filePath)
	return true, nil
}
