// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package version

import (
	"bytes"
	"runtime/debug"
	"testing"
)

func TestWriteBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	writeBuildInfo(&buf, &debug.BuildInfo{
		GoVersion: "go1.24.2",
		Settings: []debug.BuildSetting{
			{Key: "-trimpath", Value: "true"},
			{Key: "vcs.revision", Value: "0123abcd"},
			{Key: "vcs.modified", Value: "false"},
		},
	})
	want := "go\tgo1.24.2\nbuild\tvcs.revision=0123abcd\nbuild\tvcs.modified=false\n"
	if got := buf.String(); got != want {
		t.Errorf("writeBuildInfo=%q; want %q", got, want)
	}
}
