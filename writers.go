package riverbc

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/mmio"
)

// WriteForcing writes one refined input point's hydrograph to the
// solver's river-forcing format: ascending (time-in-seconds, flow)
// pairs, tab-separated, no header. The file is keyed by the point
// number and the bounding coordinates of a half-cell buffer around the
// refined cell, which is how the solver locates the entry cell.
func WriteForcing(dir string, rip RefinedInputPoint, smps []HydrographSample) error {
	h := rip.Resolution / 2.
	fp := fmt.Sprintf("%s/river_%d_%.2f_%.2f_%.2f_%.2f.txt", dir, rip.PointNo,
		rip.Cell.X-h, rip.Cell.Y-h, rip.Cell.X+h, rip.Cell.Y+h)
	tw, err := mmio.NewTXTwriter(fp)
	if err != nil {
		return fmt.Errorf("WriteForcing point %d: %v", rip.PointNo, err)
	}
	defer tw.Close()
	for _, s := range smps {
		tw.WriteLine(fmt.Sprintf("%d\t%f", int(s.OffsetMins*60.), s.Flow))
	}
	return nil
}

// WriteAllForcings writes every point of a pipeline result to dir,
// creating it if needed.
func WriteAllForcings(dir string, res *Result) error {
	mmio.MakeDir(dir)
	uiprogress.Start()
	bar := uiprogress.AddBar(len(res.Points)).AppendCompleted().PrependElapsed()
	defer uiprogress.Stop()
	for i, rip := range res.Points {
		if err := WriteForcing(dir, rip, res.Samples[i]); err != nil {
			return err
		}
		bar.Incr()
	}
	return nil
}
