// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/morefs/pkg/operation"
)

// 🧪 setupWorkspace writes a source tree and a config file into a temp dir
func setupWorkspace(t *testing.T, cfg string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"src/a.txt":       "hello",
		"src/sub/b.txt":   "world!",
		"src/sub/x.log":   "noise",
		"src/tmp/c.txt":   "scratch",
		"single/file.txt": "single",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".morefs.yaml"), []byte(cfg), 0o644))
	return dir
}

// execute runs the root command in verbose mode so no spinner is started
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--verbose"}, args...))
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestRootCommands(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		args    func(dir string) []string
		check   func(t *testing.T, dir, out string)
		wantErr error
	}{
		{
			name:   "copy_tree_with_config_and_flag_excludes",
			config: "parallel: true\nworkers: 2\nexclude:\n  - \"**/*.log\"\n",
			args: func(dir string) []string {
				return []string{"--exclude", "tmp", "cp", "-r", filepath.Join(dir, "src"), filepath.Join(dir, "dst")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.FileExists(t, filepath.Join(dir, "dst", "a.txt"))
				assert.FileExists(t, filepath.Join(dir, "dst", "sub", "b.txt"))
				assert.NoFileExists(t, filepath.Join(dir, "dst", "sub", "x.log"))
				assert.NoDirExists(t, filepath.Join(dir, "dst", "tmp"))
				assert.Contains(t, out, "11 B copied")
			},
		},
		{
			name:   "copy_tree_into_existing_dir",
			config: "",
			args: func(dir string) []string {
				return []string{"cp", "-r", filepath.Join(dir, "src"), filepath.Join(dir, "single")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.FileExists(t, filepath.Join(dir, "single", "src", "tmp", "c.txt"))
				assert.FileExists(t, filepath.Join(dir, "single", "file.txt"))
			},
		},
		{
			name:   "copy_file_with_parents",
			config: "",
			args: func(dir string) []string {
				return []string{"cp", "-p", filepath.Join(dir, "single", "file.txt"), filepath.Join(dir, "deep", "er", "file.txt")}
			},
			check: func(t *testing.T, dir, out string) {
				data, err := os.ReadFile(filepath.Join(dir, "deep", "er", "file.txt"))
				require.NoError(t, err)
				assert.Equal(t, "single", string(data))
			},
		},
		{
			name:   "copy_dir_without_recursive",
			config: "",
			args: func(dir string) []string {
				return []string{"cp", filepath.Join(dir, "src"), filepath.Join(dir, "dst")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.Contains(t, out, "failed after 0 of 1, 0 B copied")
				assert.NoDirExists(t, filepath.Join(dir, "dst"))
			},
			wantErr: operation.ErrIsDirectory,
		},
		{
			name:   "copy_many_into_dir",
			config: "",
			args: func(dir string) []string {
				return []string{"cp", filepath.Join(dir, "src", "a.txt"), filepath.Join(dir, "single", "file.txt"), filepath.Join(dir, "src", "sub")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.FileExists(t, filepath.Join(dir, "src", "sub", "a.txt"))
				assert.FileExists(t, filepath.Join(dir, "src", "sub", "file.txt"))
				assert.Contains(t, out, "morefs • 2 operations")
				assert.Contains(t, out, "-> "+filepath.Join(dir, "src", "sub")+": copy, 5 B")
				assert.Contains(t, out, "2 operations done, 11 B copied")
			},
		},
		{
			name:   "move_file",
			config: "",
			args: func(dir string) []string {
				return []string{"mv", filepath.Join(dir, "single", "file.txt"), filepath.Join(dir, "moved.txt")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.FileExists(t, filepath.Join(dir, "moved.txt"))
				assert.NoFileExists(t, filepath.Join(dir, "single", "file.txt"))
			},
		},
		{
			name:   "move_tree",
			config: "",
			args: func(dir string) []string {
				return []string{"mv", filepath.Join(dir, "src"), filepath.Join(dir, "moved")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.FileExists(t, filepath.Join(dir, "moved", "sub", "x.log"))
				assert.NoDirExists(t, filepath.Join(dir, "src"))
			},
		},
		{
			name:   "remove_tree_and_missing_tree",
			config: "",
			args: func(dir string) []string {
				return []string{"rm", "-r", filepath.Join(dir, "src"), filepath.Join(dir, "never")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.NoDirExists(t, filepath.Join(dir, "src"))
			},
		},
		{
			name:   "remove_dir_without_recursive",
			config: "",
			args: func(dir string) []string {
				return []string{"rm", filepath.Join(dir, "src")}
			},
			wantErr: operation.ErrIsDirectory,
		},
		{
			name:   "mkdir_parents",
			config: "",
			args: func(dir string) []string {
				return []string{"mkdir", "-p", filepath.Join(dir, "a", "b", "c"), filepath.Join(dir, "src")}
			},
			check: func(t *testing.T, dir, out string) {
				assert.DirExists(t, filepath.Join(dir, "a", "b", "c"))
			},
		},
		{
			name:   "metrics_file_written",
			config: "",
			args: func(dir string) []string {
				return []string{"--metrics-file", filepath.Join(dir, "morefs.prom"), "cp", "-r", filepath.Join(dir, "src"), filepath.Join(dir, "dst")}
			},
			check: func(t *testing.T, dir, out string) {
				data, err := os.ReadFile(filepath.Join(dir, "morefs.prom"))
				require.NoError(t, err)
				assert.Contains(t, string(data), "morefs_bytes_total")
				assert.Contains(t, string(data), "morefs_trees_total")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupWorkspace(t, tt.config)
			args := append([]string{"--config", filepath.Join(dir, ".morefs.yaml")}, tt.args(dir)...)

			out, err := execute(t, args...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.check != nil {
					tt.check(t, dir, out)
				}
				return
			}
			require.NoError(t, err, "output: %s", out)
			if tt.check != nil {
				tt.check(t, dir, out)
			}
		})
	}
}

func TestRootInvalidConfig(t *testing.T) {
	dir := setupWorkspace(t, "workers: -1\n")
	_, err := execute(t, "--config", filepath.Join(dir, ".morefs.yaml"), "mkdir", filepath.Join(dir, "new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.NoDirExists(t, filepath.Join(dir, "new"))
}

func TestRootFlagValidation(t *testing.T) {
	dir := setupWorkspace(t, "")
	_, err := execute(t, "--config", filepath.Join(dir, ".morefs.yaml"), "--exclude", "[", "mkdir", filepath.Join(dir, "new"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applying flags")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "morefs version info")
	assert.Contains(t, out, GetVersionInfo().GoVersion)
}
