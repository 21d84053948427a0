package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/context-lens/internal/common"
)

func TestStripDataURIPrefix(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "png data URI", in: "data:image/png;base64,iVBORw0KGgo=", want: "iVBORw0KGgo="},
		{name: "raw base64", in: "iVBORw0KGgo=", want: "iVBORw0KGgo="},
		{name: "no comma", in: "data:image/png;base64", want: "data:image/png;base64"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripDataURIPrefix(tt.in))
		})
	}
}

func TestDataURIRoundTrip(t *testing.T) {
	uri := DataURI("image/png", pngBytes)

	assert.Equal(t, "image/png", MIMETypeFromDataURI(uri))
	assert.Equal(t, "iVBORw0KGgo", StripDataURIPrefix(uri)[:11])
	assert.Empty(t, MIMETypeFromDataURI("iVBORw0KGgo="))
	assert.Empty(t, MIMETypeFromDataURI("data:image/png"))
}

func TestDetectImageType(t *testing.T) {
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
	gif := []byte("GIF89a\x01\x00\x01\x00")
	unknown := []byte{0x00, 0x00, 0x00, 0x18, 0x66, 0x74, 0x79, 0x70, 0x00, 0x01, 0x02}

	tests := []struct {
		name    string
		file    string
		want    string
		data    []byte
		wantErr bool
	}{
		{name: "png by content", file: "photo.bin", data: pngBytes, want: "image/png"},
		{name: "jpeg by content", file: "photo", data: jpeg, want: "image/jpeg"},
		{name: "gif by content", file: "anim.gif", data: gif, want: "image/gif"},
		{name: "content wins over extension", file: "photo.heic", data: pngBytes, want: "image/png"},
		{name: "heic by extension", file: "IMG_0001.HEIC", data: unknown, want: "image/heic"},
		{name: "unknown binary", file: "blob.dat", data: unknown, wantErr: true},
		{name: "text with image extension", file: "fake.png", data: []byte("just some text"), wantErr: true},
		{name: "pdf", file: "manual.pdf", data: []byte("%PDF-1.7\n"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectImageType(tt.file, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrUnsupportedImage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewImageSelection(t *testing.T) {
	image, err := NewImageSelection("phone.png", pngBytes)
	require.NoError(t, err)
	assert.Equal(t, "phone.png", image.FileName)
	assert.Equal(t, "image/png", image.MIMEType)
	assert.Equal(t, DataURI("image/png", pngBytes), image.DataURI)
	assert.False(t, image.Restored)

	_, err = NewImageSelection("empty.png", nil)
	assert.ErrorIs(t, err, common.ErrNoImageSelected)

	huge := make([]byte, MaxImageBytes+1)
	copy(huge, pngBytes)
	_, err = NewImageSelection("huge.png", huge)
	assert.ErrorIs(t, err, common.ErrUnsupportedImage)
}

func TestLoadImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phone.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))

	image, err := LoadImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, "phone.png", image.FileName)
	assert.Equal(t, "image/png", image.MIMEType)

	_, err = LoadImageFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	_, err = LoadImageFile(dir)
	assert.ErrorIs(t, err, common.ErrUnsupportedImage)
}

func TestController_SelectFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phone.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))

	c, _ := loggedInController(t, answering(analysis("Phone", 85)))
	require.NoError(t, c.SelectFile(path))

	state := c.Snapshot()
	require.NotNil(t, state.Image)
	assert.Equal(t, "phone.png", state.Image.FileName)

	assert.Error(t, c.SelectFile(filepath.Join(dir, "missing.png")))
}
