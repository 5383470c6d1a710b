package s3

import (
	"testing"
	"villa/config"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"
	cfg.External.S3.BucketName = "villa"

	svc := &s3Impl{config: cfg}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.example.com/gallery/a.jpg", want: "gallery/a.jpg"},
		{name: "api endpoint", url: "https://s3.example.com/villa/blog/b.png", want: "blog/b.png"},
		{name: "foreign url", url: "https://images.example.org/c.jpg", want: ""},
		{name: "bare domain", url: "https://cdn.example.com/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ObjectKeyFromURL(tt.url))
		})
	}

	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", svc.publicURL("gallery/a.jpg"))
}

func TestNewObjectName(t *testing.T) {
	first := NewObjectName("Sunset.JPG")
	second := NewObjectName("Sunset.JPG")

	assert.Equal(t, ".jpg", first[len(first)-4:])
	assert.NotEqual(t, first, second)
	assert.Len(t, NewObjectName("no-extension"), 36)
}
