package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pipeyard/pipeyard/internal/sandbox"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "sandbox.toml", "path to the sandbox config file")
	flag.Parse()

	cfg := sandbox.LoadConfig(configPath)
	ebiten.SetWindowTitle("Pipeyard Sandbox")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	if err := ebiten.RunGame(sandbox.New(cfg)); err != nil {
		log.Fatal(err)
	}
}
