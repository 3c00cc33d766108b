package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"embview/internal/config"
	"embview/internal/meta"
	"embview/internal/projection"
	"embview/internal/render"
	"embview/internal/service"
	"embview/internal/store"
)

var successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/embview/config.yaml if not provided)")
	flag.Parse()
	if flag.NArg() > 1 {
		fmt.Println("Usage: embview [--config=embview.yaml] [output.html]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	output := cfg.Output.Path
	if flag.NArg() == 1 {
		output = flag.Arg(0)
	}

	// Assemble the pipeline components
	renderer := render.NewHTML(render.Options{
		Title:      cfg.Plot.Title,
		Colorscale: cfg.Plot.Colorscale,
		MarkerSize: cfg.Plot.MarkerSize,
		ScriptURL:  cfg.Plot.ScriptURL,
	})
	svc := service.NewViewService(store.NewLoader(), meta.NewLoader(), projection.NewPCA(), renderer)

	written, err := svc.Build(cfg.Store.Path, cfg.Meta.Path, output)
	if err != nil {
		log.Fatalf("failed to build view: %v", err)
	}
	fmt.Println(successStyle.Render("Wrote view to " + written))
}
