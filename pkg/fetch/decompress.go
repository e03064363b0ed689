// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package fetch

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// newStreamDecompressor wraps r according to the transport
// compression. Only stream codecs belong here; zip needs random
// access and goes through openZipPayload instead.
func newStreamDecompressor(r io.Reader, compression string) (io.ReadCloser, error) {
	switch compression {
	case "":
		return io.NopCloser(r), nil
	case "zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr.IOReadCloser(), nil
	case "gz":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return gr, nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", compression)
	}
}

// openZipPayload opens the edge list member of a downloaded zip
// archive. Catalog archives bundle the edge list with README and
// property files, so member selection is by suffix: a member named
// edges.csv wins, otherwise the archive must contain exactly one
// .csv member.
func openZipPayload(archivePath string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open zip archive: %w", err)
	}

	member, err := selectZipMember(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}

	rc, err := member.Open()
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("open zip member %s: %w", member.Name, err)
	}
	return &zipPayloadReader{ReadCloser: rc, archive: zr}, nil
}

func selectZipMember(files []*zip.File) (*zip.File, error) {
	var csvMembers []*zip.File
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		name := path.Base(f.Name)
		if name == "edges.csv" {
			return f, nil
		}
		if strings.HasSuffix(name, ".csv") {
			csvMembers = append(csvMembers, f)
		}
	}
	switch len(csvMembers) {
	case 0:
		return nil, errors.New("zip archive contains no csv member")
	case 1:
		return csvMembers[0], nil
	default:
		names := make([]string, len(csvMembers))
		for i, f := range csvMembers {
			names[i] = f.Name
		}
		return nil, fmt.Errorf("zip archive is ambiguous: %d csv members (%s) and none named edges.csv",
			len(csvMembers), strings.Join(names, ", "))
	}
}

// zipPayloadReader closes the enclosing archive together with the
// member reader.
type zipPayloadReader struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipPayloadReader) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
