// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/xyat21/planingfsi/fem"
	"github.com/xyat21/planingfsi/inp"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("\nERROR: %v\n", err)
			io.Pf("See location of error below:\n")
			chk.Verbose = true
			for i := 5; i > 3; i-- {
				chk.CallerInfo(i)
			}
		}
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)
	io.Verbose = verbose

	// message
	if verbose {
		io.PfWhite("\nplaningfsi -- planing structure equilibrium solver\n")
		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
		))
	}

	// simulation data
	sim, err := inp.ReadSim(fnamepath, erasePrev)
	if err != nil {
		chk.Panic("cannot read simulation file:\n%v", err)
	}

	// structural system
	st, err := fem.NewStructure(sim)
	if err != nil {
		chk.Panic("cannot allocate structure:\n%v", err)
	}
	defer st.Clean()
	err = st.InitPositions()
	if err != nil {
		chk.Panic("cannot set initial positions:\n%v", err)
	}

	// run simulation
	err = st.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}
}
