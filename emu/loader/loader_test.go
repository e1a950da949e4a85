/*
 * um - Program loader tests.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadBigEndianWords checks P8: a buffer of length 4k decodes into k
// words, each the big-endian decode of its four bytes.
func TestLoadBigEndianWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.um")
	raw := []byte{
		0x00, 0x00, 0x00, 0x01,
		0xFF, 0x00, 0xAB, 0xCD,
		0x70, 0x00, 0x00, 0x00,
	}
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	words, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x00000001, 0xFF00ABCD, 0x70000000}, words)
}

func TestLoadRejectsShortTrailer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.um")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4, 5}, 0o600))

	_, err := Load(path)
	require.Error(t, err)
	var malformed *ErrMalformed
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, 5, malformed.Len)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.um"))
	assert.Error(t, err)
}

func TestLoadEmptyProgramIsValid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.um")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	words, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, words)
}
