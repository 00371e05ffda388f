package render

import (
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/OCharnyshevich/worldlayers/pkg/world/forest"
	"github.com/OCharnyshevich/worldlayers/pkg/world/label"
)

func TestDraw(t *testing.T) {
	v := View{X: -10, Z: 4, Width: 20, Height: 7, Step: 3}
	sample := func(x, z int) int32 {
		if x < 0 {
			return int32(label.Ocean)
		}
		return int32(label.Plains)
	}
	img, err := Draw(context.Background(), v, sample, Labels, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 7 {
		t.Fatalf("bounds = %v", b)
	}
	// Pixel 3 samples x = -1, pixel 4 samples x = 2.
	if got := img.RGBAAt(3, 2); got != Labels(int32(label.Ocean)) {
		t.Errorf("pixel 3 = %v", got)
	}
	if got := img.RGBAAt(4, 6); got != Labels(int32(label.Plains)) {
		t.Errorf("pixel 4 = %v", got)
	}
}

func TestDrawRejectsBadView(t *testing.T) {
	for _, v := range []View{{Width: 0, Height: 1, Step: 1}, {Width: 1, Height: 1, Step: 0}} {
		if _, err := Draw(context.Background(), v, nil, Labels, 1); err == nil {
			t.Errorf("view %+v accepted", v)
		}
	}
}

func TestDrawCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := View{Width: 4, Height: 4, Step: 1}
	if _, err := Draw(ctx, v, func(int, int) int32 { return 0 }, Labels, 2); err == nil {
		t.Error("canceled draw succeeded")
	}
}

func TestCaption(t *testing.T) {
	img, err := Draw(context.Background(), View{Width: 120, Height: 40, Step: 1}, func(int, int) int32 { return 0 }, Hashed, 1)
	if err != nil {
		t.Fatal(err)
	}
	plain := img.RGBAAt(100, 30)
	Caption(img, "biome/shore")
	if img.RGBAAt(100, 30) != plain {
		t.Error("caption drawn outside its band")
	}
	changed := false
	for x := 0; x < 40 && !changed; x++ {
		for z := 0; z < 19; z++ {
			if img.RGBAAt(x, z) != plain {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("caption not drawn")
	}
}

func TestPalettes(t *testing.T) {
	if Labels(int32(label.LakeMarker)) != markerColor {
		t.Error("marker not highlighted")
	}
	if Labels(int32(label.Plains)) == markerColor {
		t.Error("terminal label painted as marker")
	}
	if Forest(int32(forest.OldGrowth)) == Forest(int32(forest.None)) {
		t.Error("forest densities share a color")
	}
	if Hashed(7) != Hashed(7) || Hashed(7) == Hashed(8) {
		t.Error("hashed palette not stable and distinct")
	}
	if For("rock", "rock_source")(3) != Hashed(3) {
		t.Error("rock stages should use the hashed palette")
	}
	if For("biome", "shore")(int32(label.Shore)) != Labels(int32(label.Shore)) {
		t.Error("label stages should use the label palette")
	}
}

func TestRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "maps")
	r, err := New(dir, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := Meta{Seed: 5, Pipeline: "forest", Stage: "forest_edge", Level: 3, View: View{Width: 8, Height: 8, Step: 1}}
	path, err := r.Render(context.Background(), "forest", m, func(x, z int) int32 { return int32((x + z) % 5) }, Forest)
	if err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	data, err := os.ReadFile(filepath.Join(dir, "forest.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got Meta
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got != m {
		t.Errorf("meta = %+v, want %+v", got, m)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
