// Command scenedemo renders the stock scenes to PNG files.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/rendering"
	"github.com/gogpu/rendering/backend"
	_ "github.com/gogpu/rendering/backend/classic"
	_ "github.com/gogpu/rendering/backend/workspace"
	"github.com/gogpu/rendering/scenebuilder"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		backendArg = flag.String("backend", "", "backend name (default from config or registry)")
		sceneArg   = flag.String("scene", "all-shapes", "comma separated scene presets, or \"all\"")
		frames     = flag.Int("frames", 1, "frames to animate before the last capture")
		texture    = flag.String("texture", "", "texture image for the textured scenes")
		output     = flag.String("output", ".", "output directory")
		list       = flag.Bool("list", false, "list backends and scenes, then exit")
	)
	flag.Parse()

	if *list {
		fmt.Println("backends:", strings.Join(backend.Available(), ", "))
		fmt.Println("scenes:  ", strings.Join(scenebuilder.PresetNames(), ", "))
		return
	}

	cfg := rendering.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = rendering.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *backendArg != "" {
		cfg.Backend = *backendArg
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	rendering.SetLogger(logger)

	names := scenebuilder.PresetNames()
	if *sceneArg != "all" {
		names = strings.Split(*sceneArg, ",")
	}

	engine, err := backend.OpenConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to open backend: %v", err)
	}
	defer func() {
		if err := engine.Fini(); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	bcfg := scenebuilder.DefaultConfig()
	if *texture != "" {
		bcfg.TexturePath = *texture
	}
	for _, name := range names {
		path := filepath.Join(*output, fmt.Sprintf("%s-%s.png", name, engine.Name()))
		if err := renderPreset(engine, bcfg, strings.TrimSpace(name), *frames, path); err != nil {
			log.Fatalf("Scene %s: %v", name, err)
		}
		log.Printf("Scene %s saved to %s", name, path)
	}
}

func renderPreset(engine *rendering.Engine, cfg scenebuilder.Config, name string, frames int, path string) error {
	decorators, ok := scenebuilder.Preset(name)
	if !ok {
		return fmt.Errorf("unknown scene (have %s)", strings.Join(scenebuilder.PresetNames(), ", "))
	}

	scene, err := engine.CreateScene(rendering.WithName(name))
	if err != nil {
		return err
	}
	defer func() { _ = engine.DestroyScene(scene) }()

	camera, err := scene.CreateCamera(rendering.WithName("Camera"))
	if err != nil {
		return err
	}

	b := scenebuilder.New(cfg, decorators...)
	if err := b.SetScenes(scene); err != nil {
		return err
	}
	b.SetCameras(camera)
	if err := b.BuildScenes(); err != nil {
		return err
	}

	var img *image.RGBA
	for range max(frames, 1) {
		if err := b.UpdateScenes(); err != nil {
			return err
		}
		if img, err = camera.Capture(); err != nil {
			return err
		}
	}
	return savePNG(path, img)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
