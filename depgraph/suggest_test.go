package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Suggest(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		from      string
		specifier string
		want      string
	}{
		{
			name:      "drops extension when it still resolves",
			files:     map[string]string{"/src/main.ts": "", "/src/util.ts": ""},
			from:      "/src/main.ts",
			specifier: "./utils",
			want:      "./util",
		},
		{
			name:      "walks up to parent folder",
			files:     map[string]string{"/src/app/main.ts": "", "/src/config.ts": ""},
			from:      "/src/app/main.ts",
			specifier: "./config",
			want:      "../config",
		},
		{
			name: "closest file wins",
			files: map[string]string{
				"/src/main.ts":          "",
				"/src/ui/Button.tsx":    "",
				"/lib/legacy/button.js": "",
			},
			from:      "/src/main.ts",
			specifier: "./button",
			want:      "./ui/Button",
		},
		{
			name:      "specifier stem inside file stem",
			files:     map[string]string{"/main.ts": "", "/userService.ts": ""},
			from:      "/main.ts",
			specifier: "./user",
			want:      "./userService",
		},
		{
			name:      "finds files in subfolders",
			files:     map[string]string{"/main.ts": "", "/styles/theme.css": ""},
			from:      "/main.ts",
			specifier: "./theme.css",
			want:      "./styles/theme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, m := newManager(t, tt.files)

			got, ok := m.Suggest(tt.from, tt.specifier)

			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager_SuggestNothing(t *testing.T) {
	_, m := newManager(t, map[string]string{
		"/src/main.ts":  "",
		"/src/other.ts": "",
	})

	_, ok := m.Suggest("/src/main.ts", "./missing")
	assert.False(t, ok)

	_, ok = m.Suggest("/src/main.ts", "../")
	assert.False(t, ok)

	_, ok = m.Suggest("/src/main.ts", "./main")
	assert.False(t, ok, "the importing file is never suggested")
}
