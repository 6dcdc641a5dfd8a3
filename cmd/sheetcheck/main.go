// Command sheetcheck validates Aseprite spritesheet exports together with
// their YAML sidecars and prints the animations they define.
//
//	sheetcheck [-frames] knight.json slime.json
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/milk9111/sheetanim/assets"
	"github.com/milk9111/sheetanim/sprite"
)

func main() {
	frames := flag.Bool("frames", false, "also list every frame")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-frames] sheet.json...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		sheet, err := load(path)
		if err != nil {
			log.Printf("%s: %v", path, err)
			failed++
			continue
		}
		report(os.Stdout, path, sheet, *frames)
	}
	if failed > 0 {
		log.Printf("%d of %d sheets failed", failed, flag.NArg())
		os.Exit(1)
	}
}

func load(path string) (*sprite.Spritesheet, error) {
	dir := filepath.Dir(path)
	lib := assets.NewLibrary(
		assets.WithFiles(func(name string) ([]byte, error) {
			return os.ReadFile(filepath.Join(dir, name))
		}),
		assets.WithImages(nil),
	)
	e, err := lib.Load(filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if img := e.Sheet.ImagePath(); img != "" {
		if _, err := os.Stat(filepath.Join(dir, img)); err != nil {
			log.Printf("%s: warning: image %s: %v", path, img, err)
		}
	}
	return e.Sheet, nil
}

func report(out io.Writer, path string, sheet *sprite.Spritesheet, frames bool) {
	fmt.Fprintf(out, "%s: %d frames, %d animations, image %s %dx%d\n",
		path, sheet.FrameCount(), sheet.Anims().Len(), sheet.ImagePath(), sheet.ImageSize().X, sheet.ImageSize().Y)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ANIMATION\tFRAMES\tDURATION\tSPEED\tEND\tDIRECTION")
	for h := range sheet.Anims().Handles() {
		a, _ := sheet.Animation(h)
		name := a.Name
		if owner, err := sheet.HandleOf(a.Name); err != nil || owner != h {
			name += " (shadowed)"
		}
		fmt.Fprintf(tw, "  %s\t%d-%d\t%s\t%.2fx\t%s\t%s\n", name, a.From, a.To, a.Duration, a.Speed(), sheet.DescribeEnd(a.End), a.Direction)
	}
	_ = tw.Flush()

	if !frames {
		return
	}
	tw = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  FRAME\tSOURCE\tTRIM\tDURATION\tPIVOT")
	for _, f := range sheet.Frames() {
		p := f.Pivot()
		fmt.Fprintf(tw, "  %d\t%v\t%v\t%s\t(%.1f,%.1f)\n", f.Index, f.Source, f.Trim(), f.Duration, p.X(), p.Y())
	}
	_ = tw.Flush()
}
