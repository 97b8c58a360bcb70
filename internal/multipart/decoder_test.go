package multipart

import (
	"bytes"
	stdmultipart "mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBoundary = "----WebKitFormBoundary7MA4YWxkTrZu0gW"

// formBody builds a body the way a browser would, through the standard writer.
func formBody(t *testing.T, files map[string][]byte, order []string) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer

	w := stdmultipart.NewWriter(&buf)
	require.NoError(t, w.SetBoundary(testBoundary))

	for _, name := range order {
		fw, err := w.CreateFormFile("file", name)
		require.NoError(t, err)

		_, err = fw.Write(files[name])
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	return buf.Bytes(), w.FormDataContentType()
}

func raw(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestBoundaryFromContentType(t *testing.T) {
	tests := []struct {
		name    string
		ct      string
		want    string
		wantErr bool
	}{
		{name: "browser", ct: "multipart/form-data; boundary=" + testBoundary, want: testBoundary},
		{name: "quoted", ct: `multipart/form-data; boundary="a b"`, want: "a b"},
		{name: "no boundary", ct: "multipart/form-data", wantErr: true},
		{name: "urlencoded", ct: "application/x-www-form-urlencoded", wantErr: true},
		{name: "empty", ct: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BoundaryFromContentType(tt.ct)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingBoundary)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecodeBrowserBody(t *testing.T) {
	files := map[string][]byte{
		"notes.txt": []byte("hello"),
		"empty.bin": {},
		"crlf.txt":  []byte("line one\r\nline two\r\n"),
		"photo.jpg": {0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, '\r', '\n', 0x00},
	}
	order := []string{"notes.txt", "empty.bin", "crlf.txt", "photo.jpg"}

	body, ct := formBody(t, files, order)

	boundary, err := BoundaryFromContentType(ct)
	require.NoError(t, err)

	parts, err := Decode(body, boundary)
	require.NoError(t, err)
	require.Len(t, parts, len(order))

	for i, name := range order {
		assert.Equal(t, "file", parts[i].FieldName)
		assert.Equal(t, name, parts[i].Filename)
		assert.Equal(t, files[name], parts[i].Data, "content of %s", name)
	}
}

func TestDecodeKeepsRawFilename(t *testing.T) {
	body := raw(
		"--XyZ",
		`Content-Disposition: form-data; name="file"; filename="../../etc/passwd"`,
		"Content-Type: text/plain",
		"",
		"root",
		"--XyZ--",
		"",
	)

	parts, err := Decode(body, []byte("XyZ"))
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "../../etc/passwd", parts[0].Filename)
	assert.Equal(t, "root", string(parts[0].Data))
}

func TestDecodeHeaderOrder(t *testing.T) {
	body := raw(
		"preamble is ignored",
		"--XyZ",
		"Content-Type: application/octet-stream",
		`content-disposition: form-data; name="file"; filename="late.bin"`,
		"",
		"payload",
		"--XyZ--",
		"epilogue is ignored too",
	)

	parts, err := Decode(body, []byte("XyZ"))
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "late.bin", parts[0].Filename)
	assert.Equal(t, "payload", string(parts[0].Data))
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     []byte
		boundary string
		max      int
		wantErr  error
	}{
		{
			name:     "missing boundary",
			body:     raw("--XyZ", "", ""),
			boundary: "",
			wantErr:  ErrMissingBoundary,
		},
		{
			name: "text field without filename",
			body: raw(
				"--XyZ",
				`Content-Disposition: form-data; name="comment"`,
				"",
				"hi",
				"--XyZ--",
			),
			boundary: "XyZ",
			wantErr:  ErrMissingFilename,
		},
		{
			name: "empty filename from an empty file input",
			body: raw(
				"--XyZ",
				`Content-Disposition: form-data; name="file"; filename=""`,
				"Content-Type: application/octet-stream",
				"",
				"",
				"--XyZ--",
			),
			boundary: "XyZ",
			wantErr:  ErrMissingFilename,
		},
		{
			name: "no blank line after headers",
			body: raw(
				"--XyZ",
				`Content-Disposition: form-data; name="file"; filename="a.txt"`,
				"--XyZ--",
			),
			boundary: "XyZ",
			wantErr:  ErrMalformedPart,
		},
		{
			name: "broken disposition parameters",
			body: raw(
				"--XyZ",
				`Content-Disposition: form-data; filename="a.txt`,
				"",
				"x",
				"--XyZ--",
			),
			boundary: "XyZ",
			wantErr:  ErrMalformedPart,
		},
		{
			name:     "no parts",
			body:     raw("--XyZ--", ""),
			boundary: "XyZ",
			wantErr:  ErrNoParts,
		},
		{
			name:     "wrong boundary",
			body:     raw("--XyZ", `Content-Type: text/plain`, "", "x", "--XyZ--"),
			boundary: "Other",
			wantErr:  ErrNoParts,
		},
		{
			name:     "too large",
			body:     bytes.Repeat([]byte("a"), 64),
			boundary: "XyZ",
			max:      63,
			wantErr:  ErrBodyTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := Decoder{MaxBodySize: tt.max}.Decode(tt.body, []byte(tt.boundary))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, parts)
		})
	}
}
