package media

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}
	gifHeader  = []byte("GIF89a......")
	webpHeader = []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'E', 'B', 'P'}
	mp4Header  = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}
	webmHeader = []byte{0x1A, 0x45, 0xDF, 0xA3, 0, 0, 0, 0, 0, 0, 0, 0}
)

type fakeFile struct {
	name        string
	contentType string
	data        []byte
}

// buildHeaders round-trips fake files through a real multipart form so the
// returned FileHeaders are openable.
func buildHeaders(t *testing.T, files ...fakeFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, f.name))
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["media"]
}

func TestValidateEmptyBatch(t *testing.T) {
	assert.NoError(t, Validate(nil))
	assert.NoError(t, Validate([]*multipart.FileHeader{}))
}

func TestValidateAcceptsAllSupportedTypes(t *testing.T) {
	files := []fakeFile{
		{"a.png", "image/png", pngHeader},
		{"b.jpg", "image/jpeg", jpegHeader},
		{"c.gif", "image/gif", gifHeader},
		{"d.webp", "image/webp", webpHeader},
	}
	assert.NoError(t, Validate(buildHeaders(t, files...)))

	videos := []fakeFile{
		{"e.mp4", "video/mp4", mp4Header},
		{"f.webm", "video/webm", webmHeader},
	}
	assert.NoError(t, Validate(buildHeaders(t, videos...)))
}

func TestValidateRejectsOversizedBatch(t *testing.T) {
	files := make([]fakeFile, 0, MaxFileCount+1)
	for i := 0; i < MaxFileCount+1; i++ {
		files = append(files, fakeFile{fmt.Sprintf("f%d.png", i), "image/png", pngHeader})
	}

	err := Validate(buildHeaders(t, files...))
	assert.ErrorIs(t, err, ErrTooManyFiles)
	assert.True(t, IsValidationError(err))
}

func TestValidateRejectsEmptyFile(t *testing.T) {
	err := Validate(buildHeaders(t, fakeFile{"empty.png", "image/png", nil}))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestValidateRejectsUnsupportedType(t *testing.T) {
	err := Validate(buildHeaders(t, fakeFile{"x.pdf", "application/pdf", []byte("%PDF-1.4....")}))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.True(t, IsValidationError(err))
}

func TestValidateRejectsMismatchedSignature(t *testing.T) {
	// PNG bytes declared as JPEG.
	err := Validate(buildHeaders(t, fakeFile{"fake.jpg", "image/jpeg", pngHeader}))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.True(t, IsValidationError(err))
}

func TestValidateRejectsTruncatedHeader(t *testing.T) {
	err := Validate(buildHeaders(t, fakeFile{"tiny.png", "image/png", pngHeader[:4]}))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestValidateStopsAtFirstInvalidFile(t *testing.T) {
	files := []fakeFile{
		{"ok.png", "image/png", pngHeader},
		{"bad.jpg", "image/jpeg", gifHeader},
		{"also-bad", "text/plain", []byte("hello world!")},
	}
	err := Validate(buildHeaders(t, files...))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestValidateRejectsTooLargeFile(t *testing.T) {
	header := buildHeaders(t, fakeFile{"big.png", "image/png", pngHeader})[0]
	header.Size = MaxFileSize + 1

	err := Validate([]*multipart.FileHeader{header})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestMatchesHeader(t *testing.T) {
	cases := []struct {
		contentType string
		header      []byte
		want        bool
	}{
		{"image/png", pngHeader, true},
		{"image/jpeg", jpegHeader, true},
		{"image/gif", gifHeader, true},
		{"image/webp", webpHeader, true},
		{"video/mp4", mp4Header, true},
		{"video/webm", webmHeader, true},
		{"image/png", jpegHeader, false},
		{"image/webp", []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'A', 'V', 'E'}, false},
		{"image/png", pngHeader[:8], false}, // below the minimum window
		{"application/pdf", []byte("%PDF-1.4...."), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchesHeader(tc.contentType, tc.header),
			"%s with %v", tc.contentType, tc.header)
	}
}
