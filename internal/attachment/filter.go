package attachment

import (
	"fmt"
	"path/filepath"
	"strings"

	"invest-portal/internal/common/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

const MB = int64(1 << 20)

var (
	ImageTypes    = []string{".jpeg", ".jpg", ".png", ".gif"}
	WebImageTypes = []string{".jpeg", ".jpg", ".png", ".gif", ".webp"}
	DocumentTypes = []string{".pdf", ".doc", ".docx"}
)

// sniffed content types accepted for each extension; parents count too.
var contentTypes = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".webp": {"image/webp"},
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".txt":  {"text/plain"},
}

// Filter accepts an upload by extension, sniffed content and size.
type Filter struct {
	Extensions []string
	MaxBytes   int64
}

func (f Filter) allows(ext string) bool {
	for _, e := range f.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (f Filter) describe() string {
	names := make([]string, len(f.Extensions))
	for i, e := range f.Extensions {
		names[i] = strings.TrimPrefix(e, ".")
	}
	return strings.Join(names, ", ")
}

// Check runs without side effects; it only reads the upload's header bytes.
func (f Filter) Check(field string, up Upload) error {
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !f.allows(ext) {
		return apperrors.New(apperrors.KindUnsupportedFileType,
			fmt.Sprintf("%s: only %s files are allowed", field, f.describe()))
	}

	if f.MaxBytes > 0 && up.Size > f.MaxBytes {
		return apperrors.New(apperrors.KindFileTooLarge,
			fmt.Sprintf("%s: file exceeds the %dMB limit", field, f.MaxBytes/MB))
	}

	if up.Open == nil {
		return apperrors.Validation(field + ": file is not readable")
	}
	rc, err := up.Open()
	if err != nil {
		return apperrors.Wrap(apperrors.KindValidation, field+": file is not readable", err)
	}
	defer rc.Close()

	detected, err := mimetype.DetectReader(rc)
	if err != nil {
		return apperrors.Wrap(apperrors.KindValidation, field+": file is not readable", err)
	}
	if !matches(detected, contentTypes[ext]) {
		return apperrors.New(apperrors.KindUnsupportedFileType,
			fmt.Sprintf("%s: content (%s) does not match %s", field, detected.String(), ext))
	}
	return nil
}

func matches(detected *mimetype.MIME, accepted []string) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, want := range accepted {
			if m.Is(want) {
				return true
			}
		}
	}
	return false
}
