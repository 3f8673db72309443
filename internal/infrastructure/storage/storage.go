// Package storage resolves laudo attachment references to downloadable URLs.
// Uploads happen out of band; a laudo only stores the object key.
package storage

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"laudos-api/config"
)

type Client struct {
	logger    *zap.Logger
	region    string
	bucket    string
	publicURL string
}

func New(logger *zap.Logger, cfg config.Storage) *Client {
	c := &Client{
		logger:    logger,
		region:    cfg.Region,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}
	if c.Enabled() {
		logger.Info("attachment storage configured", zap.String("bucket", c.bucket), zap.String("public_url", c.publicURL))
	}

	return c
}

func (c *Client) Enabled() bool { return c != nil && (c.bucket != "" || c.publicURL != "") }

// GetPublicURL returns "" when storage is not configured. Keys that are already
// absolute URLs pass through unchanged.
func (c *Client) GetPublicURL(key string) string {
	if !c.Enabled() || key == "" {
		return ""
	}
	if u, err := url.Parse(key); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return key
	}

	escaped := escapeKey(strings.TrimLeft(key, "/"))
	if c.publicURL != "" {
		return c.publicURL + "/" + escaped
	}
	if c.region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, escaped)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, escaped)
}

// GetPublicURLs maps keys in order; nil when storage is disabled.
func (c *Client) GetPublicURLs(keys []string) []string {
	if !c.Enabled() {
		return nil
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = c.GetPublicURL(k)
	}
	return out
}

func (c *Client) GetBucket() string { return c.bucket }

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
