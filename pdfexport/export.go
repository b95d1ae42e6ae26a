// seehuhn.de/go/whiteboard - an interactive freehand whiteboard engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfexport

import (
	"image/color"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard/element"
	"seehuhn.de/go/whiteboard/freehand"
	"seehuhn.de/go/whiteboard/geometry"
	"seehuhn.de/go/whiteboard/render"
)

// Options control the layout of an exported page.
type Options struct {
	// Margin is the space around the drawing, in logical units.
	Margin float64

	// Scale is the number of PDF points per logical unit.
	Scale float64

	// Background fills the page.  If it is nil, the page is left blank.
	Background color.Color

	Title string

	// Date is stored as the creation date of the document.  The zero value
	// means the current time.
	Date time.Time

	// Compress enables compression of the page content.
	Compress bool
}

// DefaultOptions returns the options used when Write is called with nil
// options.  One logical unit is one CSS pixel, which is 3/4 of a point.
func DefaultOptions() *Options {
	return &Options{
		Margin:     20,
		Scale:      0.75,
		Background: color.White,
		Compress:   true,
	}
}

// Write draws elems onto a single page, just large enough to hold the
// drawing, and writes the PDF document to w.  It returns the number of
// elements drawn.
func Write(w io.Writer, elems []*element.Element, opt *Options) (int, error) {
	if opt == nil {
		opt = DefaultOptions()
	}
	scale := opt.Scale
	if !(scale > 0) {
		scale = 1
	}

	box, ok := render.Extent(elems)
	if !ok {
		box = geometry.Rect{}
	}
	v := render.FitView(box, max(opt.Margin, 0), scale)
	width := max(v.Width*scale, 1)
	height := max(v.Height*scale, 1)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(opt.Compress)
	pdf.SetCreator("seehuhn.de/go/whiteboard", true)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	if !opt.Date.IsZero() {
		pdf.SetCreationDate(opt.Date)
		pdf.SetModificationDate(opt.Date)
	}
	pdf.AddPage()

	p := NewPainter(pdf)
	p.Background = opt.Background
	n := render.NewRenderer(freehand.Outliner{}).Frame(p, v, elems, nil)
	p.Close()

	if err := pdf.Output(w); err != nil {
		return 0, errors.Wrap(err, "write PDF")
	}
	return n, nil
}
