// Field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fieldgen/field"
	"github.com/pthm-cable/fieldgen/noise"
	"github.com/pthm-cable/fieldgen/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	gridSize = 256
	zSpeed   = 100.0 // world units per second while animating
)

func defaultParams() field.Params {
	return field.Params{
		Seed:        12335,
		Start:       noise.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		Next:        noise.Vec3{X: gridSize + 0.5, Y: gridSize + 0.5, Z: 0.5},
		Frequency:   0.006,
		Lacunarity:  2.0,
		Persistence: 0.5,
		Octaves:     4,
		Orientation: noise.ImproveXY,
		Dims:        [3]int{gridSize, gridSize, 1},
		FlipYZ:      true,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()

	// Create texture for rendering
	buf := make([]byte, params.BufferLen())
	pixels := make([]color.RGBA, params.CellCount())
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	perf := telemetry.NewPerfCollector(60)

	// Time for animation
	var z float32 = 0
	animating := false

	needsRegen := true

	for !rl.WindowShouldClose() {
		perf.RecordFrame()

		// Animation
		if animating {
			z += rl.GetFrameTime() * zSpeed
			needsRegen = true
		}

		// Regenerate if needed
		if needsRegen {
			params.Start.Z = z + 0.5
			params.Next.Z = z + 0.5
			regenerate(&params, buf, pixels, texture, perf)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		var minVal, maxVal byte = 255, 0
		for i := 0; i < len(buf); i += 4 {
			if buf[i] < minVal {
				minVal = buf[i]
			}
			if buf[i] > maxVal {
				maxVal = buf[i]
			}
		}
		stats := perf.Stats()

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %d  Max: %d  Dispatch: %.2fms", minVal, maxVal,
			float64(stats.AvgDispatchDuration.Microseconds())/1000), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Z: %.1f", z), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Frequency slider
		rl.DrawText("Frequency (base sampling rate)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFrequency := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.001", "0.05",
			params.Frequency, 0.001, 0.05,
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.Frequency), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFrequency != params.Frequency {
			params.Frequency = newFrequency
			needsRegen = true
		}
		panelY += 35

		// Octaves slider
		rl.DrawText("Octaves (fractal layers)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOctaves := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "8",
			float32(params.Octaves), 1, 8,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Octaves), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newOctaves) != params.Octaves {
			params.Octaves = int(newOctaves)
			needsRegen = true
		}
		panelY += 35

		// Lacunarity slider
		rl.DrawText("Lacunarity (frequency multiplier)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newLacunarity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1.0", "4.0",
			params.Lacunarity, 1.0, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Lacunarity), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newLacunarity != params.Lacunarity {
			params.Lacunarity = newLacunarity
			needsRegen = true
		}
		panelY += 35

		// Persistence slider
		rl.DrawText("Persistence (amplitude multiplier)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newPersistence := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "0.9",
			params.Persistence, 0.1, 0.9,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Persistence), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newPersistence != params.Persistence {
			params.Persistence = newPersistence
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			params.Seed, 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if float32(int(newSeed)) != params.Seed {
			params.Seed = float32(int(newSeed))
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, orientationLabel(params.Orientation)) {
			if params.Orientation == noise.ImproveXY {
				params.Orientation = noise.Conventional
			} else {
				params.Orientation = noise.ImproveXY
			}
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = float32(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			z = 0
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"field:",
			fmt.Sprintf("  seed: %.0f", params.Seed),
			fmt.Sprintf("  frequency: %.4f", params.Frequency),
			fmt.Sprintf("  lacunarity: %.2f", params.Lacunarity),
			fmt.Sprintf("  persistence: %.2f", params.Persistence),
			fmt.Sprintf("  octaves: %d", params.Octaves),
			fmt.Sprintf("  orientation: %s", params.Orientation),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf(`field:
  seed: %.0f
  frequency: %.4f
  lacunarity: %.2f
  persistence: %.2f
  octaves: %d
  orientation: %s`,
				params.Seed, params.Frequency, params.Lacunarity,
				params.Persistence, params.Octaves, params.Orientation)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func orientationLabel(o noise.Orientation) string {
	if o == noise.Conventional {
		return "Conventional"
	}
	return "ImproveXY"
}

// regenerate runs one dispatch and uploads the result to the GPU texture.
func regenerate(params *field.Params, buf []byte, pixels []color.RGBA, texture rl.Texture2D, perf *telemetry.PerfCollector) {
	perf.StartDispatch()
	perf.StartPhase(telemetry.PhaseDispatch)
	if err := field.Generate(*params, buf); err != nil {
		// Slider values keep the params valid; a failure here is a bug.
		panic(err)
	}

	perf.StartPhase(telemetry.PhaseEncode)
	for i := range pixels {
		pixels[i] = color.RGBA{R: buf[4*i], G: buf[4*i+1], B: buf[4*i+2], A: 255}
	}
	rl.UpdateTexture(texture, pixels)
	perf.EndDispatch()
}
