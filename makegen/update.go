// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package makegen

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.chromium.org/infra/build/mkdeps/config"
	"go.chromium.org/infra/build/mkdeps/o11y/clog"
)

// Update writes generated into the makefile of cfg.
//
// Lines of the existing makefile before the marker line are kept, and
// the marker and generated follow. In append mode, all existing lines
// are kept and generated is appended without marker.
// The result is written to "<makefile>.tmp", which then replaces the
// makefile. Failures to replace are logged but not returned; the temp
// file stays in that case.
func Update(ctx context.Context, fsys FileSystem, cfg *config.Config, generated string) error {
	var out bytes.Buffer
	old, err := fsys.ReadFile(ctx, cfg.Makefile)
	switch {
	case err == nil:
		copyPrologue(&out, old, cfg.Append)
	case errors.Is(err, fs.ErrNotExist):
	default:
		clog.Warningf(ctx, "read %s: %v", cfg.Makefile, err)
	}
	if !cfg.Append {
		out.WriteString(config.Marker)
		out.WriteString("\n\n")
	}
	out.WriteString(generated)

	tmp := cfg.Makefile + ".tmp"
	err = fsys.WriteFile(ctx, tmp, out.Bytes(), 0644)
	if err != nil {
		return fmt.Errorf("can't write %s: %w", tmp, err)
	}

	err = fsys.Remove(ctx, cfg.Makefile)
	if err != nil {
		if _, serr := fsys.Stat(ctx, cfg.Makefile); serr == nil {
			clog.Warningf(ctx, "removing %q failed: %v", cfg.Makefile, err)
		}
	}
	err = fsys.Rename(ctx, tmp, cfg.Makefile)
	if err != nil {
		clog.Warningf(ctx, "renaming %q to %q failed: %v", tmp, cfg.Makefile, err)
	}
	return nil
}

// copyPrologue copies lines of old up to the marker line, or all lines
// if all is true.
func copyPrologue(out *bytes.Buffer, old []byte, all bool) {
	s := bufio.NewScanner(bytes.NewReader(old))
	s.Buffer(make([]byte, 0, 64*1024), len(old)+1)
	for s.Scan() {
		line := strings.TrimSuffix(s.Text(), "\r")
		if !all && line == config.Marker {
			return
		}
		out.WriteString(s.Text())
		out.WriteByte('\n')
	}
}
