package attachments

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/projtrack/internal/models"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEncodeDecode_ByteExact(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x10, 'a', '\n', 0x80}
	got, err := Decode(Encode(raw))
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("not base64!!")
	require.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	d, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "spec.txt", d.Name)
	assert.EqualValues(t, 11, d.Size)
	assert.Contains(t, d.Type, "text/plain")
	assert.Equal(t, Encode([]byte("hello world")), d.Content)
}

func TestFromFile_Missing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}

func TestDetectType_SniffsWithoutExtension(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	assert.Equal(t, "image/png", DetectType("logo", png))
}

func TestExport_RoundTrip(t *testing.T) {
	raw := []byte("%PDF-1.4 binary\x00\x01")
	doc := models.Document{
		ID:         "doc-1",
		Name:       "report.pdf",
		Size:       int64(len(raw)),
		Type:       "application/pdf",
		Content:    Encode(raw),
		UploadedAt: time.Now(),
	}

	out := filepath.Join(t.TempDir(), "downloads")
	path, err := Export(out, doc)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "report.pdf"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, raw, got)
}

func TestExport_StripsDirectories(t *testing.T) {
	out := t.TempDir()
	path, err := Export(out, models.Document{ID: "d", Name: "../../etc/passwd", Content: Encode([]byte("x"))})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(out, "passwd"), path)
}

func TestExport_DotNamesFallBackToID(t *testing.T) {
	for _, name := range []string{"..", ".", "", "/"} {
		out := t.TempDir()
		path, err := Export(out, models.Document{ID: "doc-7", Name: name, Content: Encode([]byte("payload"))})
		require.NoError(t, err, name)
		require.Equal(t, filepath.Join(out, "doc-7"), path, name)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, []byte("payload"), got)
	}
}

func TestExport_BadPayloadWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "downloads")
	_, err := Export(out, models.Document{ID: "d", Name: "a.txt", Content: "%%%"})
	require.Error(t, err)
	_, statErr := os.Stat(out)
	require.True(t, os.IsNotExist(statErr))
}

func TestEnsureDir_RelativeToCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("downloads")
	require.NoError(t, err)

	// macOS reports /private/var for t.TempDir()
	wantReal, _ := filepath.EvalSymlinks(filepath.Join(tmp, "downloads"))
	gotReal, _ := filepath.EvalSymlinks(got)
	require.Equal(t, wantReal, gotReal)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureDir("downloads")
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureDir_FailsIfFileExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "downloads")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureDir(blocker)
	require.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{5*1024*1024 + 512*1024, "5.5 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in), "size %d", tt.in)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindImage, KindOf("image/png"))
	assert.Equal(t, KindDocument, KindOf("application/pdf"))
	assert.Equal(t, KindDocument, KindOf("text/plain; charset=utf-8"))
	assert.Equal(t, KindDocument, KindOf("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, KindFile, KindOf("application/zip"))
}
