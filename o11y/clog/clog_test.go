// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package clog

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf, Options{Verbosity: 1}))

	if !V(ctx, 1) {
		t.Errorf("V(ctx, 1)=false; want true")
	}
	if V(ctx, 2) {
		t.Errorf("V(ctx, 2)=true; want false")
	}
	Infof(ctx, "scanning %s", "foo.c")
	Warningf(ctx, "renaming %q failed", "makefile.tmp")

	got := buf.String()
	for _, want := range []string{"scanning foo.c", `renaming "makefile.tmp" failed`} {
		if !strings.Contains(got, want) {
			t.Errorf("log output %q doesn't contain %q", got, want)
		}
	}
}

func TestFromContextDefault(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil {
		t.Fatal("FromContext(ctx)=nil; want default logger")
	}
	if logger.V(1) {
		t.Errorf("default logger V(1)=true; want false")
	}
}
