package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sheetanim/assets"
)

func main() {
	sheet := flag.String("sheet", "knight", "sheet key (JSON basename, .json optional)")
	dir := flag.String("assets", assets.Dir, "directory searched for sheets before the embedded ones")
	zoom := flag.Float64("zoom", 4, "sprite scale")
	watch := flag.Bool("watch", true, "reload sheets, configs, images and scripts when they change on disk")
	flag.Parse()

	assets.Dir = *dir

	var watcher *assets.Watcher
	if *watch {
		if _, err := os.Stat(*dir); err == nil {
			w, err := assets.NewWatcher(*dir)
			if err != nil {
				log.Printf("watch %s: %v", *dir, err)
			} else {
				watcher = w
			}
		}
	}

	game, err := NewGame(*sheet, *zoom, watcher)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("sheetanim - " + *sheet)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
