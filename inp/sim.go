// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Data holds global data for simulations
type Data struct {

	// global information
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/planingfsi
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"

	// environment and flow
	Rho   float64 `json:"rho"`   // water density
	Grav  float64 `json:"grav"`  // gravity constant
	HWL   float64 `json:"hwl"`   // undisturbed water level
	Pc    float64 `json:"pc"`    // cushion pressure
	Pstag float64 `json:"pstag"` // stagnation pressure (used to normalise residuals)
	Lref  float64 `json:"lref"`  // reference length
	W     float64 `json:"w"`     // total weight

	// load application
	SealLoadPct        float64 `json:"sealloadpct"`        // fraction of W carried by the structure
	PressureLimiter    bool    `json:"pressurelimiter"`    // clip fluid pressure to stagnation pressure
	CushionForceMethod string  `json:"cushionforcemethod"` // "integrated", "assumed" or "matched"
	ResultsFromFile    bool    `json:"resultsfromfile"`    // replay: load results instead of solving
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name"`      // "umfpack" or "mumps"
	Symmetric bool   `json:"symmetric"` // use symmetric solver
	Verbose   bool   `json:"verbose"`   // verbose?
	Timing    bool   `json:"timing"`    // show timing statistics
}

// SolverData holds structural solver data
type SolverData struct {

	// outer equilibrium loop
	NmaxIt int     `json:"nmaxit"` // max number of outer iterations
	Tol    float64 `json:"tol"`    // convergence tolerance on the global residual
	RampFn string  `json:"rampfn"` // name of ramp function (from functions database)

	// rigid-body motion
	MotionMethod string  `json:"motionmethod"` // "secant", "broyden", "broyden-num", "physical", "newmark-beta", "physical-nomass"
	RelaxRigid   float64 `json:"relaxrigid"`   // default relaxation for rigid-body/hinge updates
	TimeStep     float64 `json:"timestep"`     // time step for time-marching motion methods
	JacFirstStep float64 `json:"jacfirststep"` // first step size when building the motion Jacobian by finite differences
	BroydenReset int     `json:"broydenreset"` // number of consecutive non-improving steps before rebuilding the Broyden Jacobian

	// flexible substructures
	RelaxFEM   float64 `json:"relaxfem"`   // relaxation applied to the global FEM displacement
	MaxFEMDisp float64 `json:"maxfemdisp"` // cap on the maximum nodal displacement per iteration
}

// BodyData holds rigid body data
type BodyData struct {

	// main
	Name    string  `json:"name"`    // body name
	W       float64 `json:"w"`       // weight; 0 => loadpct * Data.W
	LoadPct float64 `json:"loadpct"` // fraction of total weight carried by this body
	Mass    float64 `json:"mass"`    // mass; 0 => W / g
	Iz      float64 `json:"iz"`      // mass moment of inertia; 0 => mass * lref² / 12

	// geometry
	XCofG        float64 `json:"xcofg"`        // x of centre of gravity
	YCofG        float64 `json:"ycofg"`        // y of centre of gravity
	XCofR        float64 `json:"xcofr"`        // x of centre of rotation; 0 => xcofg
	YCofR        float64 `json:"ycofr"`        // y of centre of rotation; 0 => ycofg
	InitialDraft float64 `json:"initialdraft"` // initial draft
	InitialTrim  float64 `json:"initialtrim"`  // initial trim angle [deg]

	// degrees of freedom
	FreeInDraft bool `json:"freeindraft"` // draft is free
	FreeInTrim  bool `json:"freeintrim"`  // trim is free

	// motion control
	MaxDraftStep float64 `json:"maxdraftstep"` // max draft step per iteration
	MaxTrimStep  float64 `json:"maxtrimstep"`  // max trim step per iteration [deg]
	DraftDamping float64 `json:"draftdamping"` // velocity-proportional damping in draft
	TrimDamping  float64 `json:"trimdamping"`  // velocity-proportional damping in trim
	MaxDraftAcc  float64 `json:"maxdraftacc"`  // max draft acceleration
	MaxTrimAcc   float64 `json:"maxtrimacc"`   // max trim acceleration
	RelaxDraft   float64 `json:"relaxdraft"`   // relaxation in draft
	RelaxTrim    float64 `json:"relaxtrim"`    // relaxation in trim
	TimeStep     float64 `json:"timestep"`     // time step; 0 => SolverData.TimeStep
	NumDamp      float64 `json:"numdamp"`      // Newmark numerical damping factor

	// Newmark-beta parameters
	Beta  float64 `json:"beta"`  // Newmark β
	Gamma float64 `json:"gamma"` // Newmark γ
}

// SubData holds substructure data
type SubData struct {

	// main
	Name string `json:"name"` // substructure name
	Kind string `json:"kind"` // "rigid", "flexible" (or "truss"), "torsionalSpring"
	Body string `json:"body"` // parent rigid body name

	// internal/static pressure
	Ps                  float64 `json:"ps"`                  // internal (static) pressure
	PsMethod            string  `json:"psmethod"`            // "constant" or "hydrostatic"
	OverPressurePct     float64 `json:"overpressurepct"`     // fraction applied to Ps (constant method)
	CushionPressureType string  `json:"cushionpressuretype"` // "total" => use Data.Pc when no fluid model is attached

	// tip load
	TipLoad    float64 `json:"tipload"`    // external vertical tip point-load
	TipLoadPct float64 `json:"tiploadpct"` // position of tip load as a fraction of the arc length

	// geometry interpolation
	InterpKind string `json:"interpkind"` // "linear" or "quadratic" (y-interpolant)
	NoExtrap   bool   `json:"noextrap"`   // disable extrapolation beyond the sampled arc-length domain

	// truss properties (flexible)
	Pretension float64 `json:"pretension"` // element pretension; axial force starts at -pretension
	EA         float64 `json:"ea"`         // axial stiffness

	// torsional spring properties
	BasePtPct      float64 `json:"baseptpct"`      // hinge base point as a fraction of the arc length (0 or 1 => end nodes)
	SpringConstant float64 `json:"springconstant"` // torsional spring constant
	RelaxAng       float64 `json:"relaxang"`       // angle relaxation; 0 => SolverData.RelaxRigid
	InitialAngle   float64 `json:"initialangle"`   // initial hinge angle [deg]
	MinimumAngle   float64 `json:"minimumangle"`   // lower bound on the hinge angle [deg]; 0 => -inf
	MaxAngleStep   float64 `json:"maxanglestep"`   // cap on the angle step per iteration [deg]; 0 => +inf
	AttachedSub    string  `json:"attachedsub"`    // name of attached downstream substructure
	AttachedEnd    string  `json:"attachedend"`    // "start" or "end": which end of the attached substructure is shared
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`          // global data
	Solver    SolverData  `json:"solver"`        // structural solver data
	LinSol    LinSolData  `json:"linsol"`        // linear solver data
	Bodies    []*BodyData `json:"bodies"`        // rigid bodies
	Subs      []*SubData  `json:"substructures"` // substructures
	Functions FuncsData   `json:"functions"`     // functions database
	MshFile   string      `json:"mshfile"`       // mesh filename (relative to the .sim file)
	PlotF     *PlotFdata  `json:"plotf"`         // plot functions definition

	// derived
	Key     string   // simulation key; e.g. "plate" for "plate.sim"
	EncType string   // encoder type
	DirOut  string   // output directory
	Msh     *Mesh    // the structural mesh
	Ramp    fun.Func // ramp function
}

// ReadSim reads a simulation (.sim) input file
//  Input:
//   simfilepath -- simulation filename including full path
//   erasePrev   -- erase previous results files in the output directory
func ReadSim(simfilepath string, erasePrev bool) (o *Simulation, err error) {

	// new simulation
	o = new(Simulation)

	// read file
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// set key
	dir := filepath.Dir(simfilepath)
	fn := filepath.Base(simfilepath)
	o.Key = fnkey(fn)

	// decode
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// set defaults
	err = o.setDefaults()
	if err != nil {
		return nil, err
	}

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/planingfsi/" + o.Key
	}
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "json"
	}

	// erase previous results and create directory
	if erasePrev {
		os.RemoveAll(o.DirOut)
	}
	err = os.MkdirAll(o.DirOut, 0777)
	if err != nil {
		return nil, chk.Err("cannot create output directory %q:\n%v", o.DirOut, err)
	}

	// ramp function
	if o.Solver.RampFn == "" {
		o.Ramp, err = fun.New("cte", fun.Prms{&fun.Prm{N: "c", V: 1}})
	} else {
		o.Ramp, err = o.Functions.Get(o.Solver.RampFn)
	}
	if err != nil {
		return nil, chk.Err("cannot set ramp function:\n%v", err)
	}

	// read mesh
	if o.MshFile != "" {
		o.Msh, err = ReadMsh(dir, o.MshFile)
		if err != nil {
			return nil, chk.Err("cannot read mesh:\n%v", err)
		}
	}
	return
}

// setDefaults fills zero-valued input fields with default values
func (o *Simulation) setDefaults() (err error) {

	// global data
	d := &o.Data
	if d.Rho == 0 {
		d.Rho = 1000
	}
	if d.Grav == 0 {
		d.Grav = 9.81
	}
	if d.Lref == 0 {
		d.Lref = 1
	}
	if d.SealLoadPct == 0 {
		d.SealLoadPct = 1
	}
	if d.CushionForceMethod == "" {
		d.CushionForceMethod = "integrated"
	}
	switch d.CushionForceMethod {
	case "integrated", "assumed", "matched":
	default:
		return chk.Err("cushion force method %q is invalid", d.CushionForceMethod)
	}

	// solver data
	s := &o.Solver
	if s.NmaxIt == 0 {
		s.NmaxIt = 100
	}
	if s.Tol == 0 {
		s.Tol = 1e-6
	}
	if s.MotionMethod == "" {
		s.MotionMethod = "broyden"
	}
	if s.RelaxRigid == 0 {
		s.RelaxRigid = 1
	}
	if s.TimeStep == 0 {
		s.TimeStep = 1e-3
	}
	if s.JacFirstStep == 0 {
		s.JacFirstStep = 1e-5
	}
	if s.BroydenReset == 0 {
		s.BroydenReset = 6
	}
	if s.RelaxFEM == 0 {
		s.RelaxFEM = 1
	}
	if s.MaxFEMDisp == 0 {
		s.MaxFEMDisp = 1
	}
	if o.LinSol.Name == "" {
		o.LinSol.Name = "umfpack"
	}

	// bodies
	if len(o.Bodies) == 0 {
		o.Bodies = []*BodyData{{Name: "default"}}
	}
	for _, b := range o.Bodies {
		if b.Name == "" {
			b.Name = "default"
		}
		if b.LoadPct == 0 {
			b.LoadPct = 1
		}
		if b.W == 0 {
			b.W = b.LoadPct * d.W
		}
		b.W *= d.SealLoadPct
		if b.Mass == 0 {
			b.Mass = b.W / d.Grav
		}
		if b.Iz == 0 {
			b.Iz = b.Mass * d.Lref * d.Lref / 12
		}
		if b.XCofR == 0 && b.YCofR == 0 {
			b.XCofR = b.XCofG
			b.YCofR = b.YCofG
		}
		if b.MaxDraftStep == 0 {
			b.MaxDraftStep = 1e-3
		}
		if b.MaxTrimStep == 0 {
			b.MaxTrimStep = 1e-3
		}
		if b.MaxDraftAcc == 0 {
			b.MaxDraftAcc = 1000
		}
		if b.MaxTrimAcc == 0 {
			b.MaxTrimAcc = 1000
		}
		if b.RelaxDraft == 0 {
			b.RelaxDraft = s.RelaxRigid
		}
		if b.RelaxTrim == 0 {
			b.RelaxTrim = s.RelaxRigid
		}
		if b.TimeStep == 0 {
			b.TimeStep = s.TimeStep
		}
		if b.Beta == 0 {
			b.Beta = 0.25
		}
		if b.Gamma == 0 {
			b.Gamma = 0.5
		}
	}

	// substructures
	for _, ss := range o.Subs {
		if ss.Name == "" {
			return chk.Err("substructure must have a name")
		}
		switch ss.Kind {
		case "", "rigid":
			ss.Kind = "rigid"
		case "flexible", "truss":
			ss.Kind = "flexible"
		case "torsionalSpring":
		default:
			return chk.Err("substructure %q: kind %q is invalid", ss.Name, ss.Kind)
		}
		if ss.PsMethod == "" {
			ss.PsMethod = "constant"
		}
		if ss.OverPressurePct == 0 {
			ss.OverPressurePct = 1
		}
		if ss.InterpKind == "" {
			ss.InterpKind = "linear"
		}
		if ss.Pretension == 0 {
			ss.Pretension = -0.5
		}
		if ss.EA == 0 {
			ss.EA = 5e7
		}
		if ss.BasePtPct == 0 && ss.Kind == "torsionalSpring" {
			ss.BasePtPct = 1
		}
		if ss.SpringConstant == 0 && ss.Kind == "torsionalSpring" {
			ss.SpringConstant = 1000
		}
		if ss.RelaxAng == 0 {
			ss.RelaxAng = s.RelaxRigid
		}
		if ss.MinimumAngle == 0 {
			ss.MinimumAngle = math.Inf(-1)
		}
		if ss.MaxAngleStep == 0 {
			ss.MaxAngleStep = math.Inf(1)
		}
		if ss.AttachedEnd == "" {
			ss.AttachedEnd = "end"
		}
	}
	return
}

// fnkey returns the file name key; e.g. "plate" for "plate.sim"
func fnkey(fn string) string {
	ext := filepath.Ext(fn)
	return fn[:len(fn)-len(ext)]
}
