package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/bacembenhfayehd/manarja-sub001/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader_PlainUTF8PassesThrough(t *testing.T) {
	input := "start,description\n2025-03-03 09:00,café meeting\n"
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("start,description")...)
	assert.Equal(t, "start,description", decode(t, input))
}

func TestNewUTF8Reader_DecodesUTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := io.ReadAll(transform.NewReader(strings.NewReader("tâche terminée"), enc))
	require.NoError(t, err)

	assert.Equal(t, "tâche terminée", decode(t, input))
}

func TestNewUTF8Reader_DecodesWindows1252(t *testing.T) {
	input, err := io.ReadAll(transform.NewReader(strings.NewReader("réunion d'équipe"), charmap.Windows1252.NewEncoder()))
	require.NoError(t, err)

	assert.Equal(t, "réunion d'équipe", decode(t, input))
}

func TestNewUTF8Reader_EmptyInput(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
