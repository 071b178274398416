package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/vibsim/internal/sim"
)

// ExportData is the flat JSON shape consumed by external tooling.
type ExportData struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

func ExportJSON(w io.Writer, meta RunMetadata, traj *sim.Trajectory) error {
	data := ExportData{
		Meta:   meta,
		Times:  traj.Times,
		States: make([][]float64, len(traj.States)),
	}
	for i, s := range traj.States {
		data.States[i] = s
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportCSV(w io.Writer, traj *sim.Trajectory) error {
	return writeStatesCSV(w, traj)
}

func writeStatesCSV(w io.Writer, traj *sim.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(stateHeader); err != nil {
		return err
	}

	for i := range traj.States {
		row := make([]string, 0, len(stateHeader))
		row = append(row, strconv.FormatFloat(traj.Times[i], 'f', 6, 64))
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 17, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
