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

// Command export replays all scenarios and writes the resulting boards as
// PNG images, PDF documents and JSON element lists.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"image"
	"image/color"
	"image/png"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard"
	"seehuhn.de/go/whiteboard/pdfexport"
	"seehuhn.de/go/whiteboard/raster"
	"seehuhn.de/go/whiteboard/testcases"
)

var (
	flagOut = flag.String("out", "testdata/scenarios", "output directory")
	flagDPR = flag.Float64("dpr", 1, "device pixel ratio of the PNG images")
)

func main() {
	flag.Parse()
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "export",
		Level: hclog.LevelFromString("INFO"),
	})

	if err := os.MkdirAll(*flagOut, 0o755); err != nil {
		logger.Error("cannot create output directory", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			name := category + "_" + sc.Name
			if err := export(ctx, name, sc); err != nil {
				logger.Error("export failed", "scenario", name, "error", err)
				os.Exit(1)
			}
			logger.Info("exported", "scenario", name)
		}
	}
}

func export(ctx context.Context, name string, sc testcases.Scenario) error {
	b, err := testcases.NewBoard(ctx, sc)
	if err != nil {
		return err
	}
	if err := testcases.Run(ctx, b, sc); err != nil {
		return err
	}
	base := filepath.Join(*flagOut, name)

	if err := writePNG(base+".png", b); err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	opt := pdfexport.DefaultOptions()
	opt.Title = name
	if _, err := pdfexport.Write(buf, b.Elements(), opt); err != nil {
		return err
	}
	if err := os.WriteFile(base+".pdf", buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write PDF")
	}

	data, err := json.MarshalIndent(b.Elements(), "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(base+".json", data, 0o644), "write JSON")
}

// writePNG renders the current view of b.
func writePNG(fname string, b *whiteboard.Board) error {
	v := b.View()
	b.SetSurface(v.OffsetX, v.OffsetY, v.Width, v.Height, *flagDPR)
	w := int(math.Ceil(v.Width * *flagDPR))
	h := int(math.Ceil(v.Height * *flagDPR))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	canvas := raster.NewCanvas(img)
	canvas.Background = color.White
	b.Render(canvas)

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrap(err, fname)
	}
	return f.Close()
}
