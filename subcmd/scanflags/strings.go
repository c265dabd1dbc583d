// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scanflags

import "strings"

// Strings is a flag.Value that may be given multiple times.
type Strings []string

func (f *Strings) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

func (f *Strings) Set(v string) error {
	*f = append(*f, v)
	return nil
}
