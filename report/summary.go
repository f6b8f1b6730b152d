/*
 * summary.go, part of gopops.
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

package report

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Stats are the mean and the standard deviation of a value over the frames of a trajectory.
type Stats struct {
	Mean float64
	Std  float64
}

//SummaryValues contains the statistics of the molecule totals over a trajectory.
type SummaryValues struct {
	Frames   int
	Phobic   Stats
	Philic   Stats
	SASA     Stats
	Buried   Stats
	SFEType  Stats
	SFEGroup Stats
	//Residues holds the mean values of each residue.
	Residues []ResidueValues
}

func stats(v []float64) Stats {
	if len(v) == 1 {
		return Stats{Mean: v[0]}
	}
	m, s := stat.MeanStdDev(v, nil)
	return Stats{Mean: m, Std: s}
}

//Summary returns the statistics of the molecule totals in frames, and the mean values
//of each residue. The standard deviation is the unbiased one, and is 0 for a single frame.
func Summary(frames []Frame) (SummaryValues, error) {
	n := len(frames)
	if n == 0 {
		return SummaryValues{}, Error{"No frames to summarize", []string{"Summary"}, true}
	}
	res, err := ResidueMeans(frames)
	if err != nil {
		return SummaryValues{}, wrap(err, "Summary")
	}
	cols := make([][]float64, 6)
	for i := range cols {
		cols[i] = make([]float64, n)
	}
	for i, f := range frames {
		cols[0][i] = f.Phobic
		cols[1][i] = f.Philic
		cols[2][i] = f.SASA
		cols[3][i] = f.Buried
		cols[4][i] = f.SFEType
		cols[5][i] = f.SFEGroup
	}
	return SummaryValues{
		Frames:   n,
		Phobic:   stats(cols[0]),
		Philic:   stats(cols[1]),
		SASA:     stats(cols[2]),
		Buried:   stats(cols[3]),
		SFEType:  stats(cols[4]),
		SFEGroup: stats(cols[5]),
		Residues: res,
	}, nil
}

//ResidueMeans returns the mean values of each residue over frames, labeled as in
//the first frame. All frames must have the same residues.
func ResidueMeans(frames []Frame) ([]ResidueValues, error) {
	if len(frames) == 0 {
		return nil, Error{"No frames to average", []string{"ResidueMeans"}, true}
	}
	n := len(frames[0].Residues)
	//one column per value, one row per residue
	sums := make([][4]float64, n)
	for _, f := range frames {
		if len(f.Residues) != n {
			return nil, Error{fmt.Sprintf("Frame %d has %d residues, expected %d", f.Index, len(f.Residues), n), []string{"ResidueMeans"}, true}
		}
		for i, r := range f.Residues {
			floats.Add(sums[i][:], []float64{r.Phobic, r.Philic, r.SASA, r.Buried})
		}
	}
	ret := make([]ResidueValues, n)
	for i, r := range frames[0].Residues {
		floats.Scale(1/float64(len(frames)), sums[i][:])
		ret[i] = ResidueValues{Chain: r.Chain, Number: r.Number, ICode: r.ICode, Name: r.Name,
			Phobic: sums[i][0], Philic: sums[i][1], SASA: sums[i][2], Buried: sums[i][3]}
	}
	return ret, nil
}

//WriteSummary writes the statistics in s.
func WriteSummary(w io.Writer, s SummaryValues) error {
	line := func(name string, st Stats) string {
		std := st.Std
		if math.IsNaN(std) {
			std = 0
		}
		return fmt.Sprintf("%-10s\t%10.2f\t%10.2f\n", name, st.Mean, std)
	}
	_, err := fmt.Fprint(w,
		fmt.Sprintf("\n=== TRAJECTORY SUMMARY (%d frames) ===\n\n", s.Frames),
		"Value\t\tMean\t\tStdDev\n",
		line("Phob/A^2", s.Phobic),
		line("Phil/A^2", s.Philic),
		line("Total/A^2", s.SASA),
		line("bSASA/A^2", s.Buried),
		line("SFEt", s.SFEType),
		line("SFEg", s.SFEGroup),
	)
	if err != nil || len(s.Residues) == 0 {
		return wrap(err, "WriteSummary")
	}
	if _, err = fmt.Fprint(w, "\n=== MEAN RESIDUE SASA ===\n\n", "ResidNe\tChain\tResidNr\tiCode\tPhob/A^2\tPhil/A^2\tTotal/A^2\tbSASA/A^2\n"); err != nil {
		return wrap(err, "WriteSummary")
	}
	for _, r := range s.Residues {
		_, err = fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%10.2f\t%10.2f\t%10.2f\t%10.2f\n", r.Name, r.Chain, r.Number, r.ICode, r.Phobic, r.Philic, r.SASA, r.Buried)
		if err != nil {
			return wrap(err, "WriteSummary")
		}
	}
	return nil
}
