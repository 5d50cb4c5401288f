package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/memvcs/pkg/cafs"
)

const mergeScript = `flavor: bytes
steps:
  - op: put
    path: /
    content: Hello World
  - op: commit
    message: First Commit
  - op: branch
    branch: feature
  - op: checkout
    ref: feature
  - op: put
    path: /feature
    content: wip
  - op: commit
    message: feature work
    author: ann
  - op: checkout
    ref: master
  - op: put
    path: /master
    content: more
  - op: commit
    message: mainline
  - op: put
    path: /feature
    content: wip
  - op: merge
    ref: feature
    message: merge feature
`

type cliResult struct {
	stdout string
	stderr string
	fatal  string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	var res cliResult

	out, errOut = &stdout, &stderr
	logFatalf = func(format string, v ...interface{}) { res.fatal = fmt.Sprintf(format, v...) }
	logFatalln = func(v ...interface{}) { res.fatal = fmt.Sprintln(v...) }

	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())

	res.stdout = stdout.String()
	res.stderr = stderr.String()
	return res
}

func writeScript(t *testing.T, name, doc string) string {
	t.Helper()
	appFs = afero.NewMemMapFs()
	pth := "/scripts/" + name
	require.NoError(t, afero.WriteFile(appFs, pth, []byte(doc), 0o600))
	return pth
}

func TestCLI_Hash(t *testing.T) {
	res := runCLI(t, "hash", "/=Hello World")
	require.Empty(t, res.fatal)

	expected := cafs.NewHasher().SumMap(map[string][]byte{"/": []byte("Hello World")})
	assert.Equal(t, expected.String()+"\n", res.stdout)

	res = runCLI(t, "hash", "no-separator")
	assert.Contains(t, res.fatal, "expected path=content")
}

func TestCLI_HashXXH3(t *testing.T) {
	t.Setenv("MEMVCS_HASH", "xxh3")
	res := runCLI(t, "hash")
	require.Empty(t, res.fatal)

	expected := cafs.NewHasher(cafs.WithAlgorithm(cafs.XXH3)).Empty()
	assert.Equal(t, expected.String()+"\n", res.stdout)
	assert.Len(t, expected.String(), 2*cafs.ShortKeySize)
}

func TestCLI_RunJSON(t *testing.T) {
	pth := writeScript(t, "merge.yaml", mergeScript)
	res := runCLI(t, "run", pth, "--format", "json", "--events=false")
	require.Empty(t, res.fatal)

	var result runResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &result))

	assert.Equal(t, "master", result.Branch)
	assert.Equal(t, 3, result.Entries)
	require.Len(t, result.Log, 3)
	assert.Equal(t, []string{"merge feature", "mainline", "First Commit"},
		[]string{result.Log[0].Message, result.Log[1].Message, result.Log[2].Message})
	assert.Len(t, result.Log[0].Parents, 2)

	expected := cafs.NewHasher().SumMap(map[string][]byte{
		"/":        []byte("Hello World"),
		"/feature": []byte("wip"),
		"/master":  []byte("more"),
	})
	assert.Equal(t, expected.String(), result.Log[0].ID)

	require.Len(t, result.Branches, 2)
	assert.Equal(t, "feature", result.Branches[0].Name)
	assert.Equal(t, "master", result.Branches[1].Name)
	assert.Equal(t, result.Log[0].ID, result.Branches[1].CommitID)
	assert.Equal(t, result.Log[0].Parents[1], result.Branches[0].CommitID)
	assert.Empty(t, result.Metrics)
}

func TestCLI_RunList(t *testing.T) {
	pth := writeScript(t, "merge.yaml", mergeScript)
	res := runCLI(t, "run", pth, "--format", "list", "--events=false")
	require.Empty(t, res.fatal)

	assert.Contains(t, res.stdout, "First Commit")
	assert.Contains(t, res.stdout, "Merge:")
	assert.Contains(t, res.stdout, "BRANCH")
	assert.Contains(t, res.stdout, "feature")
	assert.Contains(t, res.stdout, "3 entries, 18B")
}

func TestCLI_RunEvents(t *testing.T) {
	pth := writeScript(t, "hello.yaml", `steps:
  - op: put
    path: /
    content: Hello World
  - op: commit
    message: First Commit
  - op: commit
    message: same content
`)
	res := runCLI(t, "run", pth, "--format", "yaml", "--events")
	require.Empty(t, res.fatal)

	assert.Equal(t, 2, bytes.Count([]byte(res.stderr), []byte(`"type": "commit.created"`)))
	assert.Contains(t, res.stderr, `"deduplicated": true`)
	assert.Contains(t, res.stdout, "message: First Commit")
}

func TestCLI_RunMetrics(t *testing.T) {
	t.Setenv("MEMVCS_METRICS", "true")
	pth := writeScript(t, "merge.yaml", mergeScript)
	res := runCLI(t, "run", pth, "--format", "json", "--events=false")
	require.Empty(t, res.fatal)

	var result runResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &result))
	assert.Equal(t, 4.0, result.Metrics["memvcs_repository_commits_created_total"])
	assert.Equal(t, 4.0, result.Metrics["memvcs_repository_commits"])
}

func TestCLI_RunErrors(t *testing.T) {
	for _, toPin := range []struct {
		name     string
		doc      string
		expected string
	}{
		{
			name:     "unknown op",
			doc:      "steps:\n  - op: push\n",
			expected: `unknown operation "push"`,
		},
		{
			name:     "unknown reference",
			doc:      "steps:\n  - op: put\n    path: a\n  - op: commit\n    ref: deadbeef\n",
			expected: "commit not found",
		},
		{
			name:     "merge without branch",
			doc:      "steps:\n  - op: commit\n  - op: merge\n    branch: other\n    ref: master\n",
			expected: "branch not found",
		},
		{
			name:     "unknown flavor",
			doc:      "flavor: runes\nsteps: []\n",
			expected: `unsupported flavor "runes"`,
		},
		{
			name:     "unknown field",
			doc:      "steps:\n  - op: put\n    where: a\n",
			expected: "invalid script",
		},
	} {
		fixture := toPin
		t.Run(fixture.name, func(t *testing.T) {
			pth := writeScript(t, "bad.yaml", fixture.doc)
			res := runCLI(t, "run", pth, "--format", "yaml", "--events=false")
			assert.Contains(t, res.fatal, fixture.expected)
		})
	}

	appFs = afero.NewMemMapFs()
	res := runCLI(t, "run", "/missing.yaml", "--format", "yaml", "--events=false")
	assert.Contains(t, res.fatal, "read script")
}

func TestCLI_ConfigDump(t *testing.T) {
	res := runCLI(t, "config", "dump", "--format", "yaml")
	require.Empty(t, res.fatal)
	assert.Contains(t, res.stdout, "hash: blake2b")
	assert.Contains(t, res.stdout, "branch: master")

	res = runCLI(t, "config", "dump", "--format", "json")
	require.Empty(t, res.fatal)
	assert.Contains(t, res.stdout, `"hash": "blake2b"`)

	res = runCLI(t, "config", "dump", "--format", "xml")
	assert.Contains(t, res.fatal, `unsupported format "xml"`)
}
