// Command nutriscan locates a nutrition-facts panel in a product
// photo, writes the deskewed crop, and prints the detection result as
// JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/KaiserWu/NutritionKit/internal/config"
	"github.com/KaiserWu/NutritionKit/internal/imaging"
	"github.com/KaiserWu/NutritionKit/internal/label"
	"github.com/KaiserWu/NutritionKit/internal/lang"
	"github.com/KaiserWu/NutritionKit/internal/vision"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type output struct {
	Found     bool                       `json:"found"`
	Language  string                     `json:"language,omitempty"`
	Candidate *vision.RectangleCandidate `json:"candidate,omitempty"`
	CropPath  string                     `json:"crop_path,omitempty"`
	Label     *label.ParsedLabel         `json:"label,omitempty"`
}

func main() {
	var (
		imagePath   = flag.String("image", "", "path to the product photo (required)")
		configPath  = flag.String("config", "", "optional YAML tuning file")
		cropPath    = flag.String("crop", "", "write the located panel crop to this PNG path")
		scan        = flag.Bool("scan", false, "run the accurate text pass over the located panel")
		showVersion = flag.Bool("version", false, "print version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("nutriscan %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}
	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	debug := os.Getenv("NUTRISCAN_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("nutriscan v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
	}

	cache := imaging.NewImageCache()
	img, err := cache.Load(*imagePath)
	if err != nil {
		log.Fatalf("Image error: %v", err)
	}

	ocrEngine := cfg.OCREngine()
	engines := label.Engines{
		Rectangles: cfg.DetectionEngine(),
		Text:       ocrEngine,
		Characters: ocrEngine,
	}
	detector := label.NewDetector(img, engines, cfg.DetectorOptions())

	ctx := context.Background()
	result, err := detector.FindNutritionLabel(ctx)
	if err != nil {
		log.Fatalf("Detection error: %v", err)
	}

	out := output{Found: result != nil}
	if result != nil {
		out.Language = detector.Language().String()
		out.Candidate = &result.Candidate

		if *cropPath != "" {
			if err := imaging.SavePNG(result.Image, *cropPath); err != nil {
				log.Fatalf("Crop error: %v", err)
			}
			out.CropPath = *cropPath
		}

		if *scan {
			parsed, err := detector.ScanNutritionLabel(ctx, rowParser{})
			if err != nil {
				log.Fatalf("Scan error: %v", err)
			}
			out.Label = parsed
		}
	} else if debug {
		log.Printf("no nutrition label found in %s", *imagePath)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Output error: %v", err)
	}
}

// rowParser is a passthrough stand-in for the external tabular
// parser: it orders the recognized runs top to bottom and keeps the
// raw text.
type rowParser struct{}

func (rowParser) Parse(ctx context.Context, boxes []vision.TextBox, language lang.Language) (*label.ParsedLabel, error) {
	sorted := make([]vision.TextBox, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].TopLeft.Y != sorted[j].TopLeft.Y {
			return sorted[i].TopLeft.Y < sorted[j].TopLeft.Y
		}
		return sorted[i].TopLeft.X < sorted[j].TopLeft.X
	})

	raw := make([]string, len(sorted))
	for i, b := range sorted {
		raw[i] = b.Text
	}
	return &label.ParsedLabel{Language: language, Raw: raw}, nil
}
