package models

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataURL(mime string, n int) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(make([]byte, n))
}

func TestValidateImageDataURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{name: "empty removes image", in: ""},
		{name: "png", in: dataURL("image/png", 64)},
		{name: "webp at limit", in: dataURL("image/webp", MaxBlogImageBytes)},
		{name: "too large", in: dataURL("image/jpeg", MaxBlogImageBytes+1), wantErr: "at most"},
		{name: "svg rejected", in: dataURL("image/svg+xml", 16), wantErr: "unsupported image type"},
		{name: "plain url", in: "https://example.com/a.png", wantErr: "base64 data URL"},
		{name: "not base64", in: "data:image/png;base64,@@@@", wantErr: "not valid base64"},
		{name: "empty payload", in: "data:image/png;base64,", wantErr: "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageDataURL(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateBlogPostRequest_Validate(t *testing.T) {
	req := CreateBlogPostRequest{Title: "  Spring tips ", Author: " Ayşe ", Content: " Check the boiler. "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Spring tips", req.Title)
	assert.Equal(t, "Ayşe", req.Author)
	assert.Equal(t, ImageSizeMedium, req.ImageSize)

	bad := CreateBlogPostRequest{Title: "x", Author: "y", Content: "z", ImageSize: "huge"}
	assert.ErrorContains(t, bad.Validate(), "image_size")

	long := CreateBlogPostRequest{Title: strings.Repeat("ş", 201), Author: "y", Content: "z"}
	assert.ErrorContains(t, long.Validate(), "title")

	blank := CreateBlogPostRequest{Title: "x", Author: "   ", Content: "z"}
	assert.ErrorContains(t, blank.Validate(), "author")
}

func TestUpdateBlogPostRequest_ApplyOnlySetFields(t *testing.T) {
	post := BlogPost{Title: "Old", Author: "A", Content: "C", Image: dataURL("image/png", 4), ImageSize: ImageSizeLarge, Published: true}

	req := UpdateBlogPostRequest{Title: ptr("  New "), Image: ptr(""), Published: ptr(false)}
	require.NoError(t, req.Validate())
	req.Apply(&post)

	assert.Equal(t, "New", post.Title)
	assert.Equal(t, "A", post.Author)
	assert.Empty(t, post.Image)
	assert.Equal(t, ImageSizeLarge, post.ImageSize)
	assert.False(t, post.Published)

	assert.Error(t, (&UpdateBlogPostRequest{Content: ptr(" ")}).Validate())
}

func TestUpdateAnnouncementRequest_Validate(t *testing.T) {
	req := UpdateAnnouncementRequest{Text: "  Closed on Monday  ", Active: true}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Closed on Monday", req.Text)
	assert.Equal(t, AnnouncementInfo, req.Type)
	assert.True(t, req.Active)

	empty := UpdateAnnouncementRequest{Text: "   ", Type: AnnouncementWarning, Active: true}
	require.NoError(t, empty.Validate())
	assert.False(t, empty.Active)

	assert.Error(t, (&UpdateAnnouncementRequest{Text: "x", Type: "loud"}).Validate())
	assert.Error(t, (&UpdateAnnouncementRequest{Text: strings.Repeat("a", 501)}).Validate())
}
