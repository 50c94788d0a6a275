// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Vert holds vertex data: coordinates, fixed degrees of freedom and fixed external loads
type Vert struct {
	Id  int       `json:"id"`  // id
	C   []float64 `json:"c"`   // coordinates (size==2)
	Fix []bool    `json:"fix"` // fixed-DOF flags (size==2)
	F   []float64 `json:"f"`   // fixed external load (size==2)
}

// Chain holds the ordered element connectivity of one substructure
type Chain struct {
	Name  string  `json:"name"`  // substructure name
	Pairs [][]int `json:"pairs"` // [nele][2] start/end vertex ids, ordered along the chain
}

// Mesh holds the structural mesh: vertices and per-substructure chains
type Mesh struct {

	// from JSON
	Verts  []*Vert  `json:"verts"`  // vertices
	Chains []*Chain `json:"chains"` // substructure chains

	// derived
	FnamePath string // complete filename path
}

// ReadMsh reads a mesh for structural analyses
//  Input:
//   dir   -- directory to find mesh file
//   fn    -- filename; e.g. plate.msh
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// new mesh
	o = new(Mesh)

	// read file
	o.FnamePath = filepath.Join(dir, fn)
	b, err := io.ReadFile(o.FnamePath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", o.FnamePath, err)
	}

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", o.FnamePath, err)
	}

	// check vertex data
	for i, v := range o.Verts {
		if v.Id != i {
			return nil, chk.Err("vertex ids must be sequential. %d != %d", v.Id, i)
		}
		if len(v.C) != 2 {
			return nil, chk.Err("vertex %d must have 2 coordinates. %d is invalid", v.Id, len(v.C))
		}
		if v.Fix == nil {
			v.Fix = make([]bool, 2)
		}
		if v.F == nil {
			v.F = make([]float64, 2)
		}
		if len(v.Fix) != 2 || len(v.F) != 2 {
			return nil, chk.Err("vertex %d: fix and f arrays must have 2 entries each", v.Id)
		}
	}

	// check chain data
	for _, c := range o.Chains {
		if len(c.Pairs) < 1 {
			return nil, chk.Err("chain %q must have at least one element", c.Name)
		}
		for i, p := range c.Pairs {
			if len(p) != 2 {
				return nil, chk.Err("chain %q: pair %d must have 2 vertex ids", c.Name, i)
			}
			for _, id := range p {
				if id < 0 || id >= len(o.Verts) {
					return nil, chk.Err("chain %q: vertex id %d is out of range", c.Name, id)
				}
			}
			if i > 0 {
				if p[0] != c.Pairs[i-1][1] {
					return nil, chk.Err("chain %q: elements must be contiguous. %d != %d", c.Name, p[0], c.Pairs[i-1][1])
				}
			}
		}
	}
	return
}

// ChainByName returns the chain corresponding to a substructure name or nil
func (o *Mesh) ChainByName(name string) *Chain {
	for _, c := range o.Chains {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// VertIds returns the ordered vertex ids along a chain (nele + 1 entries)
func (o *Chain) VertIds() (ids []int) {
	ids = make([]int, 0, len(o.Pairs)+1)
	for _, p := range o.Pairs {
		ids = append(ids, p[0])
	}
	ids = append(ids, o.Pairs[len(o.Pairs)-1][1])
	return
}
