/*
 * plot.go, part of gopops.
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
	"image/color"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gopops"
	"github.com/rmera/gopops/sasa"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	phobicColor = color.RGBA{R: 230, G: 159, B: 0, A: 255}
	philicColor = color.RGBA{R: 0, G: 114, B: 178, A: 255}
)

func basicResiduePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Residue"
	p.Y.Label.Text = "SASA/A^2"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

//residueLabel returns chain:number for the residue, with the
//insertion code, if any.
func residueLabel(at *chem.Atom) string {
	l := fmt.Sprintf("%s:%d", at.Chain, at.MolID)
	if at.ICode != "-" && at.ICode != "" {
		l += at.ICode
	}
	return l
}

//ResiduePlot returns a bar chart with the hydrophobic and hydrophilic SASA
//of each residue in s, stacked.
func ResiduePlot(mol chem.Atomer, s *sasa.Result, title string) (*plot.Plot, error) {
	if len(s.Residues) == 0 {
		return nil, Error{"No residues to plot", []string{"ResiduePlot"}, true}
	}
	phob := make(plotter.Values, len(s.Residues))
	phil := make(plotter.Values, len(s.Residues))
	names := make([]string, len(s.Residues))
	for i, r := range s.Residues {
		phob[i] = r.Phobic
		phil[i] = r.Philic
		names[i] = residueLabel(mol.Atom(r.Ref))
	}
	p := basicResiduePlot(title)
	w := vg.Points(8)
	bphob, err := plotter.NewBarChart(phob, w)
	if err != nil {
		return nil, wrap(err, "ResiduePlot")
	}
	bphob.Color = phobicColor
	bphob.LineStyle.Width = 0
	bphil, err := plotter.NewBarChart(phil, w)
	if err != nil {
		return nil, wrap(err, "ResiduePlot")
	}
	bphil.Color = philicColor
	bphil.LineStyle.Width = 0
	bphil.StackOn(bphob)
	p.Add(bphob, bphil)
	p.Legend.Add("hydrophobic", bphob)
	p.Legend.Add("hydrophilic", bphil)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 1.5708 //90 degrees
	p.X.Tick.Label.XAlign = -1
	return p, nil
}

//PlotResidues saves the residue SASA plot to filename. The format is given by the
//extension, which can be png, svg, pdf, eps, jpg or tif. The width grows with the number of residues.
func PlotResidues(filename string, mol chem.Atomer, s *sasa.Result, title string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return Error{fmt.Sprintf("Unsupported plot format %q", filepath.Ext(filename)), []string{"PlotResidues"}, true}
	}
	p, err := ResiduePlot(mol, s, title)
	if err != nil {
		return wrap(err, "PlotResidues")
	}
	width := vg.Length(len(s.Residues)) * 10 * vg.Points(1)
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	if err := p.Save(width, 4*vg.Inch, filename); err != nil {
		return wrap(err, "PlotResidues")
	}
	return nil
}
