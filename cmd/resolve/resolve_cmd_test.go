package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/vfsgraph/internal/testhelpers"
)

func writeProject(t *testing.T) string {
	t.Helper()
	return testhelpers.WriteProject(t, map[string]string{
		"src/main.ts":               "",
		"src/util.ts":               "",
		"src/components/index.tsx":  "",
		"src/components/Button.tsx": "",
	})
}

func TestResolveCommand_Resolved(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "src/main.ts", "./components")
	require.NoError(t, err)
	assert.Equal(t, "/src/components/index.tsx\n", output)

	output, err = testhelpers.Run(t, NewCommand(), "-d", dir, "src/main.ts", "./components/button")
	require.NoError(t, err)
	assert.Equal(t, "/src/components/Button.tsx\n", output)
}

func TestResolveCommand_Unresolved(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "src/main.ts", "./utils")

	require.NoError(t, err)
	testhelpers.Goldie(t).Assert(t, "resolve_unresolved", []byte(output))
}

func TestResolveCommand_JSON(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "/src/main.ts", "../src/util", "-f", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"from": "/src/main.ts",
		"specifier": "../src/util",
		"external": false,
		"resolved": "/src/util.ts"
	}`, output)
}

func TestResolveCommand_PackageImport(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "src/main.ts", "react")

	require.NoError(t, err)
	assert.Equal(t, "react is a package import and is not resolved inside the project.\n", output)
}

func TestResolveCommand_UnknownFromFile(t *testing.T) {
	dir := writeProject(t)

	_, err := testhelpers.Run(t, NewCommand(), "-d", dir, "src/nope.ts", "./util")

	assert.ErrorContains(t, err, "file not found in project: src/nope.ts")
}
