package attachment

import (
	"bytes"
	"io"
	"mime/multipart"
)

// Upload is one file received from a client, not yet written to the Blob Store.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Uploads groups files by their form field name.
type Uploads map[string][]Upload

func (u Uploads) Add(field string, up Upload) {
	u[field] = append(u[field], up)
}

// Count returns the total number of files.
func (u Uploads) Count() int {
	n := 0
	for _, files := range u {
		n += len(files)
	}
	return n
}

func FromFileHeader(fh *multipart.FileHeader) Upload {
	return Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func FromBytes(filename string, data []byte) Upload {
	return Upload{
		Filename: filename,
		Size:     int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
