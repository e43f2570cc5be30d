package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/tlog"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, text := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(text), 0o644))
	}

	return dir
}

func runCmd(t *testing.T, args ...string) (status int, stdout, stderr string) {
	t.Helper()

	old := tlog.DefaultLogger
	t.Cleanup(func() { tlog.DefaultLogger = old })

	var o, e bytes.Buffer

	status = run(append([]string{"minic"}, args...), nil, &o, &e)

	return status, o.String(), e.String()
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.c":    "int main(int x){int x; return x;}\n",
		"good.c":   "int main(int x){int y; y = x; return y;}\n",
		"undef.c":  "int foo() { return y; }\n",
		"syntax.c": "int f( {\n",
	})

	status, stdout, stderr := runCmd(t, "check", filepath.Join(dir, "bad.c"))
	assert.Equal(t, 1, status)
	assert.Equal(t, "", stdout)
	assert.Equal(t, "Semantic error: duplicate declaration of variable 'x' in same scope\n", stderr)

	status, stdout, stderr = runCmd(t, "check", filepath.Join(dir, "good.c"))
	assert.Equal(t, 0, status)
	assert.Equal(t, "", stdout)
	assert.Equal(t, "", stderr)

	status, _, stderr = runCmd(t, "check", filepath.Join(dir, "good.c"), filepath.Join(dir, "undef.c"), filepath.Join(dir, "bad.c"))
	assert.Equal(t, 1, status)
	assert.Equal(t, "Semantic error: use of undeclared variable 'y'\n", stderr)

	status, _, stderr = runCmd(t, "check", filepath.Join(dir, "syntax.c"))
	assert.Equal(t, 1, status)
	assert.Regexp(t, `^error: parse: .*syntax.c:1:8.*\n$`, stderr)
}

func TestCheckVerbose(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.c": "int main(int x){int x; return x;}\n",
	})

	status, _, stderr := runCmd(t, "--verbosity=semantic", "check", filepath.Join(dir, "bad.c"))
	assert.Equal(t, 1, status)
	assert.Contains(t, stderr, "declare")
	assert.Contains(t, stderr, "Semantic error: duplicate declaration of variable 'x' in same scope\n")
}

func TestFmt(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.c": "int f(int a){return a;}",
	})

	status, stdout, stderr := runCmd(t, "fmt", filepath.Join(dir, "a.c"))
	assert.Equal(t, 0, status)
	assert.Equal(t, "int f(int a) {\n\treturn a;\n}\n", stdout)
	assert.Equal(t, "", stderr)
}
