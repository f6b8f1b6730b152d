/*
 * files.go, part of gopops.
 *
 * Copyright 2024 The gopops authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type stdql struct {
	closeql func()
	*zstd.Decoder
}

//Close Closes the object. It can not be used after this call
func (s stdql) Close() error {
	s.closeql()
	return nil
}

//fileCloser closes both the (de)compressor and the file under it.
type fileCloser struct {
	io.Reader
	io.Writer
	layer io.Closer
	f     *os.File
}

func (c *fileCloser) Close() error {
	err := c.layer.Close()
	err2 := c.f.Close()
	if err != nil {
		return err
	}
	return err2
}

//Open opens the file name for reading. Files ending in .gz are read through
//a gzip decompressor, and files ending in .zst or .zstd through a zstd one. Anything else is read as is.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	var AnyNewReader func(io.Reader) (io.ReadCloser, error)
	gzreader := func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	zstdreader := func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return &stdql{r.Close, r}, nil
	}
	switch compression(name) {
	case "gz":
		AnyNewReader = gzreader
	case "zst":
		AnyNewReader = zstdreader
	default:
		return f, nil
	}
	r, err := AnyNewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, CError{"Can't open compressed file " + name + ": " + err.Error(), []string{"Open"}, true}
	}
	return &fileCloser{Reader: r, layer: r, f: f}, nil
}

//Create creates the file name for writing. As with Open, the extension selects gzip or zstd
//compression. The optional level is given to the gzip writer.
func Create(name string, compressionLevel ...int) (io.WriteCloser, error) {
	level := gzip.DefaultCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	switch compression(name) {
	case "gz":
		AnyNewWriter = gzipwriter
	case "zst":
		AnyNewWriter = zstdwriter
	default:
		return f, nil
	}
	w, err := AnyNewWriter(f)
	if err != nil {
		f.Close()
		return nil, CError{"Can't create compressed file " + name + ": " + err.Error(), []string{"Create"}, true}
	}
	return &fileCloser{Writer: w, layer: w, f: f}, nil
}

func compression(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".gz"):
		return "gz"
	case strings.HasSuffix(n, ".zst"), strings.HasSuffix(n, ".zstd"):
		return "zst"
	}
	return ""
}
