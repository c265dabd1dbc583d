// Copyright 2024 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package scandeps

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"go.chromium.org/infra/build/mkdeps/o11y/clog"
)

// HeaderMap maps include names to file paths, as in clang's *.hmap.
// Keys are lower-cased; lookup is case-insensitive.
type HeaderMap map[string]string

// Lookup returns the path of include name.
func (m HeaderMap) Lookup(name string) (string, bool) {
	p, ok := m[strings.ToLower(name)]
	return p, ok
}

type hmapParser struct {
	hmap []byte
	strs []byte
	buf  []byte
	err  error
}

func (p *hmapParser) checkMagic() {
	hmapMagic := [4]byte{'p', 'a', 'm', 'h'}
	if !bytes.HasPrefix(p.buf, hmapMagic[:]) {
		p.buf = nil
		p.err = fmt.Errorf("wrong hmap magic")
		return
	}
	p.buf = p.buf[4:]
}

func (p *hmapParser) checkVersion() {
	if p.err != nil {
		return
	}
	version := p.uint16("version")
	if p.err == nil && version != 1 {
		p.buf = nil
		p.err = fmt.Errorf("unknown hmap version %d", version)
	}
}

func (p *hmapParser) uint16(fieldName string) uint16 {
	if p.err != nil {
		return 0
	}
	if len(p.buf) < 2 {
		p.buf = nil
		p.err = fmt.Errorf("not enough for uint16 %s", fieldName)
		return 0
	}
	v := binary.LittleEndian.Uint16(p.buf)
	p.buf = p.buf[2:]
	return v
}

func (p *hmapParser) uint32(fieldName string) uint32 {
	if p.err != nil {
		return 0
	}
	if len(p.buf) < 4 {
		p.buf = nil
		p.err = fmt.Errorf("not enough for uint32 %s", fieldName)
		return 0
	}
	v := binary.LittleEndian.Uint32(p.buf)
	p.buf = p.buf[4:]
	return v
}

func (p *hmapParser) str(fieldName string) string {
	i := p.uint32(fieldName)
	if p.err != nil || i == 0 {
		return ""
	}
	if int(i) >= len(p.strs) {
		p.err = fmt.Errorf("out of index %s=%d", fieldName, i)
		return ""
	}
	v := p.strs[i:]
	e := bytes.IndexByte(v, 0)
	if e < 0 {
		p.err = fmt.Errorf("unterminated %s=%d", fieldName, i)
		return ""
	}
	return string(v[:e])
}

// ParseHeaderMap parses *.hmap file.
func ParseHeaderMap(buf []byte) (HeaderMap, error) {
	p := &hmapParser{
		hmap: buf,
		buf:  buf,
	}
	p.checkMagic()
	p.checkVersion()
	p.uint16("reserved")
	stringOffset := p.uint32("string_offset")
	p.uint32("string_count")
	hashCapacity := p.uint32("hash_capacity")
	p.uint32("max_value_length")
	if p.err != nil {
		return nil, fmt.Errorf("failed to parse hmap header: %w", p.err)
	}
	if len(p.hmap) < int(stringOffset) {
		return nil, fmt.Errorf("invalid string_offset=%d hmap size=%d", stringOffset, len(p.hmap))
	}
	p.strs = p.hmap[stringOffset:]
	m := make(HeaderMap)
	for i := 0; i < int(hashCapacity); i++ {
		if len(p.buf) < 12 {
			break
		}
		key := p.str("key")
		prefix := p.str("prefix")
		suffix := p.str("suffix")
		if p.err != nil {
			return nil, fmt.Errorf("failed to get hmap bucket:%d: %w", i, p.err)
		}
		if key == "" {
			continue
		}
		m[strings.ToLower(key)] = prefix + suffix
	}
	return m, nil
}

// headerMap returns the parsed header map of the search dir hmap.
// A missing or broken hmap is logged once and yields no entries.
func (s *Scanner) headerMap(ctx context.Context, hmap string) HeaderMap {
	if m, ok := s.hmaps[hmap]; ok {
		return m
	}
	buf, err := readFile(ctx, s.fs, hmap)
	var m HeaderMap
	if err == nil {
		m, err = ParseHeaderMap(buf)
	}
	if err != nil {
		clog.Warningf(ctx, "header map %s: %v", hmap, err)
	}
	s.hmaps[hmap] = m
	return m
}
