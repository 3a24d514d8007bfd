package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/glyphgen/internal/core"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("set pixel should change the braille cell")
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Error("unset should restore the empty cell")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(-1, -1)
	c.Set(1000, 1000)
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				t.Fatal("out of bounds writes should be dropped")
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)
	lit := 0
	for _, row := range c.Grid {
		for _, cell := range row {
			if cell != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("line should light cells")
	}
}

func TestCanvasDrawBufferThreshold(t *testing.T) {
	buf := core.NewBuffer(8, 8)
	for y := range buf {
		for x := range buf[y] {
			if x >= 4 {
				buf[y][x].CharIdx = 9
			}
		}
	}
	c := NewCanvas(4, 2)
	c.DrawBuffer(buf, 0.5)

	left, right := 0, 0
	for _, row := range c.Grid {
		for j, cell := range row {
			if cell != 0x2800 {
				if j < 2 {
					left++
				} else {
					right++
				}
			}
		}
	}
	if left != 0 {
		t.Error("dark half should stay unlit")
	}
	if right == 0 {
		t.Error("bright half should light up")
	}
}

func TestBufferPreviewMonoShape(t *testing.T) {
	buf := core.NewBuffer(16, 16)
	for y := range buf {
		for x := range buf[y] {
			buf[y][x].CharIdx = 9
		}
	}
	out := BufferPreviewMono(buf, "classic", 8, 4)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 8 {
			t.Errorf("expected 8 columns, got %q", line)
		}
		if strings.Contains(line, " ") {
			t.Errorf("dense buffer should not render blanks: %q", line)
		}
	}
}

func TestBufferPreviewEmptyInputs(t *testing.T) {
	if BufferPreview(core.Buffer{}, "classic", 8, 4) != "" {
		t.Error("empty buffer should render nothing")
	}
	if BufferPreviewMono(core.NewBuffer(4, 4), "classic", 0, 4) != "" {
		t.Error("zero cols should render nothing")
	}
}

func TestDriftChart(t *testing.T) {
	series := []float64{0.1, 0.3, 0.2, 0.5, 0.4}
	out := DriftChart("warmth", series, 30, 5)
	if out == "" {
		t.Error("chart should not be empty")
	}
	if !strings.Contains(out, "warmth") {
		t.Error("caption should name the series")
	}
	if DriftChart("x", []float64{1}, 10, 3) != "" {
		t.Error("single sample cannot be plotted")
	}
}

func TestParamsTableSortedAndBarred(t *testing.T) {
	out := ParamsTable(map[string]float64{"warmth": 0.7, "speed": 2.5, "energy": 0.2}, 10)
	energyIdx := strings.Index(out, "energy")
	warmthIdx := strings.Index(out, "warmth")
	if energyIdx < 0 || warmthIdx < 0 || energyIdx > warmthIdx {
		t.Errorf("keys should be sorted:\n%s", out)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("serene").Name != "serene" {
		t.Error("named theme lookup failed")
	}
	if GetTheme("no-such-theme").Name != "neutral" {
		t.Error("unknown theme should fall back to neutral")
	}
}

func TestThemeForMood(t *testing.T) {
	cases := []struct {
		valence, arousal float64
		want             string
	}{
		{0.8, 0.8, "euphoric"},
		{0.8, 0.0, "serene"},
		{0.0, 0.0, "neutral"},
		{-0.8, 0.8, "anxious"},
		{-0.8, 0.0, "somber"},
	}
	for _, tc := range cases {
		if got := ThemeForMood(tc.valence, tc.arousal); got.Name != tc.want {
			t.Errorf("ThemeForMood(%v, %v) = %s, want %s", tc.valence, tc.arousal, got.Name, tc.want)
		}
	}
}

func TestProgressBarBounds(t *testing.T) {
	if ProgressBar(1.5, 10) == "" || ProgressBar(-0.5, 10) == "" {
		t.Error("progress bar should clamp, not fail")
	}
}

func TestSparklineChart(t *testing.T) {
	out := SparklineChart([]float64{1, 2, 3, 4, 5, 4, 3, 2, 1}, 9)
	if out == "" {
		t.Error("sparkline should render")
	}
	flat := SparklineChart(nil, 5)
	if flat != strings.Repeat("─", 5) {
		t.Errorf("empty series should render a flat line, got %q", flat)
	}
}
