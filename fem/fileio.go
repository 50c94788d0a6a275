// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xyat21/planingfsi/inp"
)

// Encoder defines encoders
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "gob" {
		return gob.NewEncoder(w)
	}
	return json.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "gob" {
		return gob.NewDecoder(r)
	}
	return json.NewDecoder(r)
}

// MotionRec is the per-iteration motion record of one rigid body
type MotionRec struct {
	XCofR, YCofR float64
	XCofG, YCofG float64
	Draft, Trim  float64
	LiftRes      float64
	MomentRes    float64
	Lift, Drag   float64
	Moment       float64
	LiftAir      float64
	DragAir      float64
	MomentAir    float64
}

// CoordsRec is the per-iteration node coordinate record of one substructure
type CoordsRec struct {
	X, Y []float64
}

// DeformRec is the per-iteration rotation record of one torsional hinge
type DeformRec struct {
	Angle float64
}

// resultPath assembles the output filename of one record kind for one iteration
func resultPath(sim *inp.Simulation, prefix, name string, it int) string {
	return filepath.Join(sim.DirOut, io.Sf("%s_%s_%010d.%s", prefix, name, it, sim.EncType))
}

// writeRec encodes one record to the output directory
func writeRec(sim *inp.Simulation, prefix, name string, it int, rec interface{}) (err error) {
	fil, err := os.Create(resultPath(sim, prefix, name, it))
	if err != nil {
		return chk.Err("cannot create results file:\n%v", err)
	}
	defer fil.Close()
	return GetEncoder(fil, sim.EncType).Encode(rec)
}

// readRec decodes one record from the output directory
func readRec(sim *inp.Simulation, prefix, name string, it int, rec interface{}) (err error) {
	fil, err := os.Open(resultPath(sim, prefix, name, it))
	if err != nil {
		return chk.Err("cannot open results file:\n%v", err)
	}
	defer fil.Close()
	return GetDecoder(fil, sim.EncType).Decode(rec)
}

// WriteMotion writes the motion record of this iteration
func (o *RigidBody) WriteMotion(it int) (err error) {
	rec := MotionRec{
		XCofR: o.XCofR, YCofR: o.YCofR,
		XCofG: o.XCofG, YCofG: o.YCofG,
		Draft: o.Draft, Trim: o.Trim,
		LiftRes:   o.ResL,
		MomentRes: o.ResM,
		Lift:      o.L, Drag: o.D,
		Moment:  o.M,
		LiftAir: o.La, DragAir: o.Da,
		MomentAir: o.Ma,
	}
	return writeRec(o.Sim, "motion", o.Dat.Name, it, &rec)
}

// LoadMotion reads the motion record of this iteration back
func (o *RigidBody) LoadMotion(it int) (err error) {
	var rec MotionRec
	err = readRec(o.Sim, "motion", o.Dat.Name, it, &rec)
	if err != nil {
		return
	}
	o.XCofR, o.YCofR = rec.XCofR, rec.YCofR
	o.XCofG, o.YCofG = rec.XCofG, rec.YCofG
	o.Draft, o.Trim = rec.Draft, rec.Trim
	o.ResL, o.ResM = rec.LiftRes, rec.MomentRes
	o.L, o.D, o.M = rec.Lift, rec.Drag, rec.Moment
	o.La, o.Da, o.Ma = rec.LiftAir, rec.DragAir, rec.MomentAir
	return
}

// WriteCoordinates writes the node coordinates of this iteration
func (o *Substructure) WriteCoordinates(it int) (err error) {
	rec := CoordsRec{
		X: make([]float64, len(o.Nod)),
		Y: make([]float64, len(o.Nod)),
	}
	for i, nd := range o.Nod {
		rec.X[i] = nd.X[0]
		rec.Y[i] = nd.X[1]
	}
	return writeRec(o.Sim, "coords", o.Dat.Name, it, &rec)
}

// LoadCoordinates reads the node coordinates of this iteration back
func (o *Substructure) LoadCoordinates(it int) (err error) {
	var rec CoordsRec
	err = readRec(o.Sim, "coords", o.Dat.Name, it, &rec)
	if err != nil {
		return
	}
	if len(rec.X) != len(o.Nod) {
		return chk.Err("coordinates file of substructure %q has %d nodes. %d is required", o.Dat.Name, len(rec.X), len(o.Nod))
	}
	for i, nd := range o.Nod {
		nd.SetCoords(rec.X[i], rec.Y[i])
	}
	return
}

// WriteDeformation writes the hinge rotation of this iteration
func (o *SpringSub) WriteDeformation(it int) (err error) {
	return writeRec(o.Sim, "deformation", o.Dat.Name, it, &DeformRec{Angle: o.Theta})
}
