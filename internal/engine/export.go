package engine

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
)

// SavePNG writes a single frame.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveGIF writes frames as a forever-looping GIF. Frames are quantized
// to the Plan 9 palette with dithering.
func SaveGIF(frames []*image.RGBA, path string, fps int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to save")
	}
	if fps <= 0 {
		fps = 15
	}
	delay := 100 / fps // GIF delays count in 1/100s

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		pal := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, frame.Bounds(), frame, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// SaveMP4 writes frames as MP4 by encoding a temporary GIF and handing
// it to ffmpeg. Returns false without error when ffmpeg is not
// installed, so callers can degrade to GIF-only output.
func SaveMP4(frames []*image.RGBA, path string, fps int) (bool, error) {
	if len(frames) == 0 {
		return false, fmt.Errorf("no frames to save")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return false, nil
	}

	tmp, err := os.CreateTemp("", "frames-*.gif")
	if err != nil {
		return false, fmt.Errorf("temp gif: %w", err)
	}
	gifPath := tmp.Name()
	tmp.Close()
	defer os.Remove(gifPath)

	if err := SaveGIF(frames, gifPath, fps); err != nil {
		return false, err
	}

	size := frames[0].Bounds()
	cmd := exec.Command("ffmpeg",
		"-y",
		"-i", gifPath,
		"-movflags", "faststart",
		"-pix_fmt", "yuv420p",
		"-vf", fmt.Sprintf("fps=%d,scale=%d:%d:flags=neighbor", fps, size.Dx(), size.Dy()),
		filepath.Clean(path),
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return false, fmt.Errorf("ffmpeg: %w: %s", err, out)
	}
	return true, nil
}
