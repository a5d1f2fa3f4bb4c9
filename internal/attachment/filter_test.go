package attachment

import (
	"archive/zip"
	"bytes"
	"testing"

	"invest-portal/internal/common/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zipBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = fw.Write([]byte("<w:document/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFilterCheck(t *testing.T) {
	docs := Filter{Extensions: []string{".pdf", ".doc", ".docx", ".txt"}, MaxBytes: 10 * MB}

	assert.NoError(t, docs.Check("documentFile", FromBytes("policy.PDF", pdfBytes)))
	assert.NoError(t, docs.Check("documentFile", FromBytes("notes.txt", []byte("plain notes"))))
	assert.NoError(t, docs.Check("documentFile", FromBytes("policy.docx", zipBytes(t))))

	err := docs.Check("documentFile", FromBytes("policy.pdf", pngBytes))
	assert.Equal(t, apperrors.KindUnsupportedFileType, apperrors.KindOf(err))

	err = docs.Check("documentFile", FromBytes("policy", pdfBytes))
	assert.Equal(t, apperrors.KindUnsupportedFileType, apperrors.KindOf(err))

	err = docs.Check("documentFile", Upload{Filename: "a.pdf", Size: 1})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
