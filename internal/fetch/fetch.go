// SPDX-License-Identifier: MPL-2.0

// Package fetch retrieves remote run inputs over HTTP: single-file
// downloads into a run directory and listings of files linked from an
// index page.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/appexec/appexec/internal/logging"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
)

// ErrRemoteStatus is returned when the server answers with a non-2xx
// status.
var ErrRemoteStatus = errors.New("unexpected remote status")

// Client wraps an HTTP client for run-input transfers.
type Client struct {
	http   *http.Client
	logger *log.Logger
}

// NewClient builds a Client. A zero timeout leaves transfers unbounded.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        16,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logging.Named("fetch"),
	}
}

// GetFile downloads url to dest, creating parent directories as needed.
// A 404 with ignoreMissing set logs a warning and leaves no file behind;
// every other non-2xx status is an ErrRemoteStatus.
func (c *Client) GetFile(ctx context.Context, url, dest string, ignoreMissing bool) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && ignoreMissing {
		c.logger.Warn("remote file missing, skipping", "url", url)
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s returned %s", ErrRemoteStatus, url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory for %s: %w", dest, err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	c.logger.Info("fetched remote file", "url", url, "dest", dest, "bytes", n)
	return nil
}

// List returns the hrefs of all anchors on the index page at url,
// optionally filtered to an extension (with or without the leading dot).
func (c *Client) List(ctx context.Context, url, ext string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrRemoteStatus, url, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index page %s: %w", url, err)
	}

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" || attr.Val == "" {
					continue
				}
				if ext == "" || strings.HasSuffix(attr.Val, ext) {
					links = append(links, attr.Val)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return links, nil
}
