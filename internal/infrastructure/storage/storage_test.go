package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"laudos-api/config"
)

func TestClient_GetPublicURL_Table(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Storage
		key  string
		want string
	}{
		{"disabled", config.Storage{}, "x.pdf", ""},
		{"bucket and region", config.Storage{Bucket: "laudos", Region: "sa-east-1"}, "exams/x.pdf", "https://laudos.s3.sa-east-1.amazonaws.com/exams/x.pdf"},
		{"bucket only", config.Storage{Bucket: "laudos"}, "x.pdf", "https://laudos.s3.amazonaws.com/x.pdf"},
		{"public url wins", config.Storage{Bucket: "laudos", PublicURL: "https://cdn.example.com/files/"}, "/a b.pdf", "https://cdn.example.com/files/a%20b.pdf"},
		{"absolute key passes through", config.Storage{Bucket: "laudos"}, "https://other.example.com/y.pdf", "https://other.example.com/y.pdf"},
		{"empty key", config.Storage{Bucket: "laudos"}, "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := New(zap.NewNop(), tt.cfg)
			assert.Equal(t, tt.want, c.GetPublicURL(tt.key))
		})
	}
}

func TestClient_GetPublicURLs(t *testing.T) {
	off := New(zap.NewNop(), config.Storage{})
	assert.Nil(t, off.GetPublicURLs([]string{"x.pdf"}))

	on := New(zap.NewNop(), config.Storage{PublicURL: "https://cdn.test"})
	assert.Equal(t, []string{"https://cdn.test/x.pdf", "https://cdn.test/y.pdf"}, on.GetPublicURLs([]string{"x.pdf", "y.pdf"}))
	assert.Equal(t, []string{}, on.GetPublicURLs([]string{}))

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
}
