package graph

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LegacyCodeHQ/vfsgraph/internal/testhelpers"
)

func writeProject(t *testing.T) string {
	t.Helper()
	return testhelpers.WriteProject(t, map[string]string{
		"src/main.ts":      "import { util } from './util'\nimport './styles.css'\nutil()\n",
		"src/util.ts":      "export const util = () => 1\n",
		"src/util.test.ts": "import { util } from './util'\n",
		"src/styles.css":   "body {}\n",
	})
}

func TestGraphCommand_DOT(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir)

	require.NoError(t, err)
	testhelpers.Goldie(t).Assert(t, "graph_dot", []byte(output))
}

func TestGraphCommand_JSON(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "-f", "json")

	require.NoError(t, err)
	testhelpers.Goldie(t).Assert(t, "graph_json", []byte(output))
}

func TestGraphCommand_TextListsDependenciesFirst(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "-f", "text")
	require.NoError(t, err)

	order := strings.Fields(output)
	require.Len(t, order, 4)
	before := func(a, b string) bool { return slices.Index(order, a) < slices.Index(order, b) }
	assert.True(t, before("/src/util.ts", "/src/main.ts"))
	assert.True(t, before("/src/styles.css", "/src/main.ts"))
	assert.True(t, before("/src/util.ts", "/src/util.test.ts"))
}

func TestGraphCommand_TextFailsOnCycle(t *testing.T) {
	dir := testhelpers.WriteProject(t, map[string]string{
		"a.ts": "import './b'\n",
		"b.ts": "import './a'\n",
	})

	_, err := testhelpers.Run(t, NewCommand(), "-d", dir, "-f", "text")

	assert.ErrorContains(t, err, "no build order")
}

func TestGraphCommand_CycleEdgesAreRed(t *testing.T) {
	dir := testhelpers.WriteProject(t, map[string]string{
		"a.ts": "import './b'\n",
		"b.ts": "import './a'\n",
		"c.ts": "import './a'\n",
	})

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "--label", "demo")

	require.NoError(t, err)
	assert.Contains(t, output, `label="demo";`)
	assert.Contains(t, output, `"/a.ts" -> "/b.ts" [color=red];`)
	assert.Contains(t, output, `"/b.ts" -> "/a.ts" [color=red];`)
	assert.Contains(t, output, `"/c.ts" -> "/a.ts";`)
}

func TestGraphCommand_URL(t *testing.T) {
	dir := writeProject(t)

	output, err := testhelpers.Run(t, NewCommand(), "-d", dir, "--url")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "https://dreampuf.github.io/GraphvizOnline/?engine=dot#digraph%20dependencies"))
}

func TestBuildNodeNames(t *testing.T) {
	names := buildNodeNames([]string{
		"/src/a/index.ts",
		"/src/b/index.ts",
		"/lib/x/b/index.ts",
		"/src/main.ts",
	})

	assert.Equal(t, map[string]string{
		"/src/a/index.ts":   "src/a/index.ts",
		"/src/b/index.ts":   "src/b/index.ts",
		"/lib/x/b/index.ts": "x/b/index.ts",
		"/src/main.ts":      "main.ts",
	}, names)
}

func TestMajorityExtension(t *testing.T) {
	assert.Equal(t, ".ts", majorityExtension([]string{"/a.ts", "/b.ts", "/c.css"}))
	assert.Equal(t, ".css", majorityExtension([]string{"/a.ts", "/c.css"}))
}
