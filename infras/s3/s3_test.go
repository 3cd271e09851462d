package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estate/config"
	"estate/infras/otel/mocks"
	"estate/infras/s3"
)

func TestS3_GetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "estate-media"
	cfg.External.S3.APIEndpoint = "https://s3.estate.example"
	cfg.External.S3.PublicDomain = "cdn.estate.example/storage"

	svc := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "public domain url",
			url:  "cdn.estate.example/storage/estate-media/properties/photo.jpg",
			want: "properties/photo.jpg",
		},
		{
			name: "api endpoint url",
			url:  "https://s3.estate.example/estate-media/properties/photo.jpg",
			want: "properties/photo.jpg",
		},
		{
			name: "foreign url",
			url:  "https://elsewhere.example/estate-media/properties/photo.jpg",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.GetObjectNameFromURL("estate-media", tt.url))
		})
	}
}
