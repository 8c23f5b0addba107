// Package filex contains small helpers for inspecting files chosen for
// upload (profile photo, identity document).
package filex

import (
	"fmt"
	"net/http"
	"os"
)

// Info describes an upload candidate: its size and the sniffed MIME type.
type Info struct {
	Name        string
	Size        int64
	ContentType string
}

// Inspect stats the file at path and sniffs its content type from the first
// 512 bytes. Extension is deliberately ignored; the backend only cares about
// actual content.
func Inspect(path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Info{
		Name:        st.Name(),
		Size:        st.Size(),
		ContentType: http.DetectContentType(buf[:n]),
	}, nil
}
