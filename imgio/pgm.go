// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package imgio writes a rendered DRR PixelSpace to disk. This sits
// outside the core DRR computation (spec.md §1 places file I/O among the
// out-of-scope external collaborators) but a complete repository still
// needs somewhere to put the result, the same way the teacher's out
// package turns FE results into files.
package imgio

import (
	"bytes"
	"encoding/binary"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/gofem-imaging/drrgo/geom"
)

// WritePGM16 writes a 12-bit-scaled PixelSpace (as produced by
// beam.BeamGeometry.CreateDRR) as a binary PGM (P5), with samples stored
// as 16-bit big-endian, matching the format's own maxval convention for
// more than 8 bits per sample.
func WritePGM16(path string, px *geom.PixelSpace) error {
	var hdr, data bytes.Buffer
	io.Ff(&hdr, "P5\n%d %d\n4095\n", px.Nx, px.Ny)

	for j := 0; j < px.Ny; j++ {
		for i := 0; i < px.Nx; i++ {
			v, err := px.At(i, j)
			if err != nil {
				return err
			}
			if v < 0 {
				v = 0
			}
			if v > 4095 {
				v = 4095
			}
			if err := binary.Write(&data, binary.BigEndian, uint16(v)); err != nil {
				return chk.Err("imgio.WritePGM16: cannot encode pixel (%d,%d): %v", i, j, err)
			}
		}
	}

	io.WriteFile(path, &hdr, &data)
	return nil
}

// WriteRawF32 dumps the raw float32 intensities of px (before or after
// 12-bit scaling) as a flat little-endian binary file, row-major, for
// debugging in external tools. It writes unconditionally; it does not
// check chk.Verbose, and nothing in this module calls it.
func WriteRawF32(path string, px *geom.PixelSpace) error {
	var data bytes.Buffer
	for j := 0; j < px.Ny; j++ {
		for i := 0; i < px.Nx; i++ {
			v, err := px.At(i, j)
			if err != nil {
				return err
			}
			if err := binary.Write(&data, binary.LittleEndian, float32(v)); err != nil {
				return chk.Err("imgio.WriteRawF32: cannot encode pixel (%d,%d): %v", i, j, err)
			}
		}
	}
	io.WriteFile(path, &data)
	return nil
}
