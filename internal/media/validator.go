package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
)

const (
	MaxFileCount = 4
	MaxFileSize  = 50 * 1024 * 1024 // 50MB

	// Header window read for signature checks. Enough for every format in
	// the table; anything shorter than 12 bytes cannot match at all.
	headerWindow    = 64
	minHeaderLength = 12
)

var (
	ErrTooManyFiles      = errors.New("maximum 4 media files allowed")
	ErrEmptyFile         = errors.New("empty file is not allowed")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedType   = errors.New("unsupported media type")
	ErrSignatureMismatch = errors.New("file content does not match declared type")
)

// IsValidationError reports whether err came from batch validation rules, as
// opposed to an I/O or storage failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrTooManyFiles) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrSignatureMismatch)
}

// Declared content type -> magic-byte matcher over the leading header window.
var signatureChecks = map[string]func(h []byte) bool{
	"image/png":  isPNG,
	"image/jpeg": isJPEG,
	"image/gif":  isGIF,
	"image/webp": isWebP,
	"video/mp4":  isMP4,
	"video/webm": isWebM,
}

// Validate checks an uploaded batch against count, size, declared-type and
// magic-byte rules. The first failing file aborts the whole call; nothing is
// stored here. An empty batch succeeds trivially.
func Validate(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}

	if len(files) > MaxFileCount {
		return ErrTooManyFiles
	}

	for _, file := range files {
		if file == nil || file.Size == 0 {
			return ErrEmptyFile
		}

		if file.Size > MaxFileSize {
			return fmt.Errorf("%w: %s", ErrFileTooLarge, safeName(file))
		}

		ct := file.Header.Get("Content-Type")
		if _, ok := signatureChecks[ct]; !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedType, ct)
		}

		header, err := readHeader(file)
		if err != nil || !MatchesHeader(ct, header) {
			return fmt.Errorf("%w (%s): %s", ErrSignatureMismatch, ct, safeName(file))
		}
	}

	return nil
}

// MatchesHeader reports whether the leading bytes carry the signature of the
// declared content type.
func MatchesHeader(contentType string, header []byte) bool {
	if len(header) < minHeaderLength {
		return false
	}
	check, ok := signatureChecks[contentType]
	if !ok {
		return false
	}
	return check(header)
}

func readHeader(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, headerWindow)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return header[:n], nil
}

func safeName(file *multipart.FileHeader) string {
	if file.Filename == "" {
		return "unknown"
	}
	return file.Filename
}

// 89 50 4E 47 0D 0A 1A 0A
func isPNG(h []byte) bool {
	return h[0] == 0x89 && h[1] == 0x50 && h[2] == 0x4E && h[3] == 0x47 &&
		h[4] == 0x0D && h[5] == 0x0A && h[6] == 0x1A && h[7] == 0x0A
}

// FF D8 FF
func isJPEG(h []byte) bool {
	return h[0] == 0xFF && h[1] == 0xD8 && h[2] == 0xFF
}

// "GIF87a" or "GIF89a"
func isGIF(h []byte) bool {
	return h[0] == 'G' && h[1] == 'I' && h[2] == 'F' &&
		h[3] == '8' && (h[4] == '7' || h[4] == '9') && h[5] == 'a'
}

// "RIFF" at 0, "WEBP" at 8
func isWebP(h []byte) bool {
	return h[0] == 'R' && h[1] == 'I' && h[2] == 'F' && h[3] == 'F' &&
		h[8] == 'W' && h[9] == 'E' && h[10] == 'B' && h[11] == 'P'
}

// "ftyp" at offset 4 (common, not universal)
func isMP4(h []byte) bool {
	return h[4] == 'f' && h[5] == 't' && h[6] == 'y' && h[7] == 'p'
}

// EBML header: 1A 45 DF A3
func isWebM(h []byte) bool {
	return h[0] == 0x1A && h[1] == 0x45 && h[2] == 0xDF && h[3] == 0xA3
}
