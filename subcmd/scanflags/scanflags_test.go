// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scanflags

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/infra/build/mkdeps/config"
)

func TestConfig(t *testing.T) {
	for _, tc := range []struct {
		name    string
		file    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "default",
			want: []string{"."},
		},
		{
			name: "include-flags",
			args: []string{"-I", "include", "-I", "lib"},
			want: []string{".", "include", "lib"},
		},
		{
			name: "cflags",
			args: []string{"-I", "include", "-cflags", `-O2 -Igen -isystem "third party/include" -DNDEBUG`},
			want: []string{".", "include", "gen", "third party/include"},
		},
		{
			name: "config-file-first",
			file: `include_dirs = ["base"]`,
			args: []string{"-I", "include"},
			want: []string{".", "base", "include"},
		},
		{
			name:    "bad-cflags",
			args:    []string{"-cflags", `-I"unterminated`},
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			dir := t.TempDir()
			if tc.file != "" {
				err := os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte(tc.file), 0644)
				if err != nil {
					t.Fatal(err)
				}
			}
			t.Chdir(dir)

			var f Flags
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			f.Register(fs)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			cfg, err := f.Config(ctx, dir)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Config(ctx, %q)=_, %v; want err %t", dir, err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}
			if diff := cmp.Diff(tc.want, cfg.SearchDirs); diff != "" {
				t.Errorf("Config(ctx, %q).SearchDirs diff -want +got:\n%s", dir, diff)
			}
		})
	}
}

func TestConfig_MissingFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	t.Chdir(dir)

	f := Flags{ConfigFile: "missing.toml"}
	_, err := f.Config(ctx, dir)
	if err == nil {
		t.Errorf("Config(ctx, %q)=_, nil; want error for missing -config file", dir)
	}
}
