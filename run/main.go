package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	riverbc "github.com/GeospatialResearch/Digital-Twins-sub001"
	"github.com/GeospatialResearch/Digital-Twins-sub001/geojson"
	"github.com/GeospatialResearch/Digital-Twins-sub001/raster"
	"github.com/maseology/mmio"
	"go.uber.org/zap"
)

// builds river inflow boundary conditions from a .riv control file:
//
//	gdeffp     <grid definition>
//	demfp      <conditioned dem .bil>
//	riverfp    <river network .geojson>
//	wtrwyfp    <waterway survey .geojson>
//	outdir     <forcing output directory>
//	scenario   maf | <return period years>
//	bound      lower | middle | upper
//	flowlen    <flow-event duration (mins)>
//	timetopeak <time to peak (mins)>
//	thresh     <waterway snap threshold (m), optional>
//	proj       latlon | projected (optional, default projected)
func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: run <control.riv>")
	}

	tt := mmio.NewTimer()
	defer tt.Lap("\nRun complete.")

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("%v", err)
	}
	lg := zl.Sugar()
	defer zl.Sync()

	var gdefFP, demFP, riverFP, wtrwyFP, outDir string
	var req riverbc.Request
	var latlon bool
	thresh := riverbc.DefaultAlignThreshold
	func(rivFP string) { // getControls
		ins := mmio.NewInstruct(rivFP)
		gdefFP = ins.Param["gdeffp"][0]
		demFP = ins.Param["demfp"][0]
		riverFP = ins.Param["riverfp"][0]
		wtrwyFP = ins.Param["wtrwyfp"][0]
		outDir = ins.Param["outdir"][0]

		if s := ins.Param["scenario"][0]; s != "maf" {
			rp, err := strconv.Atoi(s)
			if err != nil {
				log.Fatalf("invalid scenario %q: need maf or a return period in years", s)
			}
			req.Scenario.ReturnPeriod = rp
		}
		bnd, ok := riverbc.ParseScenarioBound(ins.Param["bound"][0])
		if !ok {
			log.Fatalf("invalid bound %q: need lower, middle or upper", ins.Param["bound"][0])
		}
		req.Scenario.Bound = bnd
		if req.FlowLengthMins, err = strconv.ParseFloat(ins.Param["flowlen"][0], 64); err != nil {
			log.Fatalf("invalid flowlen: %v", err)
		}
		if req.TimeToPeakMins, err = strconv.ParseFloat(ins.Param["timetopeak"][0], 64); err != nil {
			log.Fatalf("invalid timetopeak: %v", err)
		}
		if t, ok := ins.Param["thresh"]; ok {
			if thresh, err = strconv.ParseFloat(t[0], 64); err != nil {
				log.Fatalf("invalid thresh: %v", err)
			}
		}
		if p, ok := ins.Param["proj"]; ok {
			switch p[0] {
			case "latlon":
				latlon = true
			case "projected":
			default:
				log.Fatalf("invalid proj %q: need latlon or projected", p[0])
			}
		}
	}(os.Args[1])

	dem, err := raster.Load(gdefFP, demFP)
	if err != nil {
		log.Fatalf("%v", err)
	}
	tt.Print("DEM load complete\n")

	vec, err := geojson.New(riverFP, wtrwyFP, latlon)
	if err != nil {
		log.Fatalf("%v", err)
	}
	tt.Print("vector load complete\n")

	pl := riverbc.New(vec, dem, lg)
	pl.SetAlignThreshold(thresh)
	res, err := pl.Run(context.Background(), req)
	if err != nil {
		var nrd *riverbc.NoRiverDataError
		if errors.As(err, &nrd) {
			lg.Infow("no river forcing available; model may proceed without river boundaries", "detail", nrd.Error())
			return
		}
		log.Fatalf("%v", err)
	}

	if err := riverbc.WriteAllForcings(outDir, res); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Printf(" %d river forcing files written to %s\n", len(res.Points), outDir)
}
