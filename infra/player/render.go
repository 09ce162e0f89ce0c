package player

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const (
	maxFrames     = 12
	maxMediaBytes = 4 << 20
)

var (
	ffmpegCheckOnce sync.Once
	ffmpegAvailable bool
)

func hasFFmpeg() bool {
	ffmpegCheckOnce.Do(func() {
		_, err := exec.LookPath("ffmpeg")
		ffmpegAvailable = err == nil
	})
	return ffmpegAvailable
}

func renderANSIFramesFromGIF(data []byte, w, h int, limit int) ([]string, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames")
	}
	if limit <= 0 {
		limit = maxFrames
	}
	n := min(len(g.Image), limit)
	frames := make([]string, 0, n)
	for i := range n {
		frames = append(frames, renderANSIThumbnail(g.Image[i], w, h))
	}
	return frames, nil
}

func renderANSIFramesFromVideo(ctx context.Context, url string, w, h int) ([]string, error) {
	if !hasFFmpeg() {
		return nil, fmt.Errorf("ffmpeg unavailable")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := fmt.Sprintf("fps=4,scale=%d:%d:flags=lanczos", max(w*2, 16), max(h*2, 8))
	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-hide_banner",
		"-loglevel", "error",
		"-i", url,
		"-vf", filter,
		"-frames:v", fmt.Sprintf("%d", maxFrames),
		"-f", "gif",
		"-",
	)
	data, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	return renderANSIFramesFromGIF(data, w, h, maxFrames)
}

func loadStaticFrames(ctx context.Context, client *http.Client, url string, w, h int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("media status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, err
	}
	if frames, err := renderANSIFramesFromGIF(data, w, h, maxFrames); err == nil && len(frames) > 0 {
		return frames, nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return []string{renderANSIThumbnail(img, w, h)}, nil
}

func renderANSIThumbnail(img image.Image, w, h int) string {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ""
	}
	if w < 4 {
		w = 4
	}
	if h < 2 {
		h = 2
	}
	var out strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			sy := b.Min.Y + y*b.Dy()/h
			c := color.NRGBAModel.Convert(img.At(sx, sy)).(color.NRGBA)
			fmt.Fprintf(&out, "\x1b[48;2;%d;%d;%dm  \x1b[0m", c.R, c.G, c.B)
		}
		if y < h-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
