package render

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/taigrr/wireframe/pkg/math3d"
	"github.com/taigrr/wireframe/pkg/models"
)

func referenceTransform(r *Rasterizer, cam *Camera) math3d.Mat4 {
	return r.Projection().Mul(cam.ViewMatrix())
}

func testBox(t testing.TB, placement math3d.Mat4) *models.Mesh {
	t.Helper()
	box, err := models.NewBox(2, 2, 2, placement)
	if err != nil {
		t.Fatal(err)
	}
	return box
}

func TestProjectSentinel(t *testing.T) {
	r := NewRasterizer(600, 600)
	cam := DefaultCamera()
	transform := referenceTransform(r, cam)

	tests := []struct {
		name string
		v    math3d.Vec3
	}{
		{"behind camera", math3d.V3(1.2, 0, 10)},
		{"on camera plane", math3d.V3(1.2, 0, 8)},
		{"inside near plane", math3d.V3(1.2, 0, 7.995)},
		{"far off to the side behind", math3d.V3(-50, 20, 9)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := r.Project(tc.v, transform)
			if p != Sentinel {
				t.Errorf("Project(%v) = %+v, want Sentinel", tc.v, p)
			}
			if p.X != -10 || p.Y != -10 {
				t.Errorf("sentinel coordinates = (%v,%v), want (-10,-10)", p.X, p.Y)
			}
		})
	}
}

func TestProjectVisible(t *testing.T) {
	r := NewRasterizer(600, 600)
	cam := DefaultCamera()
	transform := referenceTransform(r, cam)

	center := r.Project(math3d.V3(1.2, 0, 0), transform)
	if center.Behind || center.X != 300 || center.Y != 300 {
		t.Errorf("point on the view axis = %+v, want (300,300)", center)
	}

	// one unit right and up at view depth 8
	p := r.Project(math3d.V3(2.2, 1, 0), transform)
	depth := (8 - NearPlane) / (FarPlane - NearPlane) * FarPlane
	offset := 1 / depth * 600
	if p.Behind {
		t.Fatal("point in front of camera projected as behind")
	}
	if math.Abs(p.X-(300+offset)) > 1e-6 || math.Abs(p.Y-(300-offset)) > 1e-6 {
		t.Errorf("Project = (%v,%v), want (%v,%v)", p.X, p.Y, 300+offset, 300-offset)
	}
}

func TestProjectNoClamp(t *testing.T) {
	r := NewRasterizer(600, 600)
	p := r.Project(math3d.V3(101.2, 0, 0), referenceTransform(r, DefaultCamera()))
	if p.Behind || p.X <= 600 {
		t.Errorf("Project = %+v, want unclamped X beyond the viewport", p)
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"single point", 3, 3, 3, 3, [][2]int{{3, 3}}},
		{"horizontal", 1, 1, 4, 1, [][2]int{{1, 1}, {2, 1}, {3, 1}, {4, 1}}},
		{"vertical up", 2, 4, 2, 1, [][2]int{{2, 4}, {2, 3}, {2, 2}, {2, 1}}},
		{"shallow", 0, 0, 4, 2, [][2]int{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 2}}},
		{"diagonal", 0, 4, 4, 0, [][2]int{{0, 4}, {1, 3}, {2, 2}, {3, 1}, {4, 0}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(8, 8)
			fb.Clear(Background)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, Foreground)

			set := make(map[[2]int]bool)
			for y := range fb.Height {
				for x := range fb.Width {
					if fb.GetPixel(x, y) == Foreground {
						set[[2]int{x, y}] = true
					}
				}
			}
			if len(set) != len(tc.want) {
				t.Errorf("plotted %d pixels, want %d: %v", len(set), len(tc.want), set)
			}
			for _, p := range tc.want {
				if !set[p] {
					t.Errorf("pixel %v not plotted", p)
				}
			}
		})
	}
}

func countForeground(fb *Framebuffer) int {
	n := 0
	for _, c := range fb.Pixels {
		if c == Foreground {
			n++
		}
	}
	return n
}

func TestDrawLineOutOfBoundsIsSilent(t *testing.T) {
	r := NewRasterizer(10, 10)
	r.DrawLine(math3d.V2(-5, -5), math3d.V2(15, 15))

	if n := countForeground(r.fb); n != 10 {
		t.Errorf("plotted %d in-bounds pixels, want 10", n)
	}

	tests := []struct {
		name   string
		p0, p1 math3d.Vec2
	}{
		{"NaN", math3d.V2(math.NaN(), 0), math3d.V2(5, 5)},
		{"Inf", math3d.V2(0, 5), math3d.V2(math.Inf(1), 5)},
		{"off raster", math3d.V2(20, 20), math3d.V2(30, 25)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r.DrawLine(tc.p0, tc.p1)
			if n := countForeground(r.fb); n != 10 {
				t.Errorf("pixel count changed to %d, want 10", n)
			}
		})
	}
}

func TestDrawLineHugeCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 math3d.Vec2
		want   int
	}{
		{"beyond int range", math3d.V2(0, 0), math3d.V2(1e19, 0), 10},
		{"far but representable", math3d.V2(0, 5), math3d.V2(1e12, 5), 10},
		{"both far apart", math3d.V2(-1e18, -1e18), math3d.V2(1e18, 1e18), 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasterizer(10, 10)
			done := make(chan struct{})
			go func() {
				r.DrawLine(tc.p0, tc.p1)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(3 * time.Second):
				t.Fatal("DrawLine did not return")
			}
			if n := countForeground(r.fb); n != tc.want {
				t.Errorf("plotted %d pixels, want %d", n, tc.want)
			}
		})
	}
}

func TestFramebufferDrawLineClipsLongSegments(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	fb.Clear(Background)

	done := make(chan struct{})
	go func() {
		fb.DrawLine(0, 3, math.MaxInt, 3, Foreground)
		fb.DrawLine(math.MinInt, 0, math.MaxInt, 0, Foreground)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("DrawLine did not return")
	}
	for x := range 8 {
		if fb.GetPixel(x, 3) != Foreground || fb.GetPixel(x, 0) != Foreground {
			t.Errorf("column %d not plotted", x)
		}
	}
}

func TestDrawLineTruncates(t *testing.T) {
	r := NewRasterizer(10, 10)
	r.DrawLine(math3d.V2(1.9, 1.9), math3d.V2(3.99, 1.2))
	for x := 1; x <= 3; x++ {
		if r.fb.GetPixel(x, 1) != Foreground {
			t.Errorf("pixel (%d,1) not plotted", x)
		}
	}
	if r.fb.GetPixel(4, 1) == Foreground || r.fb.GetPixel(1, 2) == Foreground {
		t.Error("rounded instead of truncated")
	}
}

func TestNewRasterizerPublishesBlankFrame(t *testing.T) {
	r := NewRasterizer(64, 48)
	f := r.Frame()
	if f == nil {
		t.Fatal("Frame() = nil before first render")
	}
	if f.Seq != 0 {
		t.Errorf("Seq = %d, want 0", f.Seq)
	}
	if b := f.Image.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 64x48", b)
	}
	if n := f.Count(Background); n != 64*48 {
		t.Errorf("%d background pixels, want %d", n, 64*48)
	}
}

func TestNewRasterizerClampsSize(t *testing.T) {
	r := NewRasterizer(0, -3)
	if r.Width() != 1 || r.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", r.Width(), r.Height())
	}
}

func TestRenderBox(t *testing.T) {
	r := NewRasterizer(600, 600)
	box := testBox(t, math3d.Identity())
	cam := DefaultCamera()

	r.Render(cam, []*models.Mesh{box})

	f := r.Frame()
	want := FrameStats{Meshes: 1, Faces: 12, EdgesDrawn: 36}
	if f.Stats != want {
		t.Errorf("Stats = %+v, want %+v", f.Stats, want)
	}
	if f.Seq != 1 {
		t.Errorf("Seq = %d, want 1", f.Seq)
	}
	if f.Count(Foreground) == 0 {
		t.Fatal("no foreground pixels drawn")
	}
	if f.Count(Foreground)+f.Count(Background) != 600*600 {
		t.Error("frame contains colors other than foreground and background")
	}

	// every drawn pixel lies inside the projected bounds of the box
	transform := referenceTransform(r, cam)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range box.Vertices {
		p := r.Project(v, transform)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for y := range 600 {
		for x := range 600 {
			if f.Pixel(x, y) != Foreground {
				continue
			}
			if float64(x) < math.Floor(minX) || float64(x) > maxX || float64(y) < math.Floor(minY) || float64(y) > maxY {
				t.Fatalf("pixel (%d,%d) outside projected bounds [%v,%v]x[%v,%v]", x, y, minX, maxX, minY, maxY)
			}
		}
	}
}

func TestRenderSkipsEdgesBehindCamera(t *testing.T) {
	r := NewRasterizer(600, 600)
	tri := models.NewMesh("tri", 3, 1)
	tri.Vertices[0] = math3d.V3(1.2, 0, 0)
	tri.Vertices[1] = math3d.V3(2.2, 0, 0)
	tri.Vertices[2] = math3d.V3(1.2, 0, 10) // behind the camera
	tri.Faces[0] = models.Face{A: 0, B: 1, C: 2}

	r.Render(DefaultCamera(), []*models.Mesh{tri})

	want := FrameStats{Meshes: 1, Faces: 1, EdgesDrawn: 1, EdgesBehind: 2}
	if got := r.Frame().Stats; got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
	// the sentinel location must stay untouched
	if r.Frame().Pixel(0, 0) != Background {
		t.Error("edge towards the sentinel was drawn")
	}
}

func TestRenderAppliesPlacement(t *testing.T) {
	r := NewRasterizer(600, 600)
	far := testBox(t, math3d.Translate(math3d.V3(1000, 0, 0)))

	r.Render(DefaultCamera(), []*models.Mesh{far})

	f := r.Frame()
	want := FrameStats{Meshes: 1, Faces: 12, EdgesClipped: 36}
	if f.Stats != want {
		t.Errorf("Stats = %+v, want %+v", f.Stats, want)
	}
	if f.Count(Background) != 600*600 {
		t.Error("box translated out of view still drew pixels")
	}
	if far.Vertices[0] != math3d.V3(-1, 1, 1) {
		t.Error("Render mutated mesh vertices")
	}
}

func TestRenderSkipsInvalidMesh(t *testing.T) {
	r := NewRasterizer(100, 100)
	bad := models.NewMesh("bad", 3, 1)
	bad.Faces[0] = models.Face{A: 0, B: 1, C: 5}

	r.Render(DefaultCamera(), []*models.Mesh{bad, nil})

	if got := r.Frame().Stats; got != (FrameStats{}) {
		t.Errorf("Stats = %+v, want zero", got)
	}
	if r.Frame().Seq != 1 {
		t.Error("frame should still be published")
	}
}

func TestPublishedFrameIsNeverMutated(t *testing.T) {
	r := NewRasterizer(200, 200)
	box := testBox(t, math3d.Identity())

	r.Render(DefaultCamera(), []*models.Mesh{box})
	first := r.Frame()
	drawn := first.Count(Foreground)

	r.Render(DefaultCamera(), nil)
	second := r.Frame()

	if first == second || first.Image == second.Image {
		t.Fatal("render reused the published frame")
	}
	if first.Count(Foreground) != drawn {
		t.Error("previously published frame changed after the next render")
	}
	if second.Count(Foreground) != 0 {
		t.Error("empty scene drew pixels")
	}
}

func TestFramePublishAtomicity(t *testing.T) {
	const size = 120
	box := testBox(t, math3d.Identity())

	ref := NewRasterizer(size, size)
	ref.Render(DefaultCamera(), []*models.Mesh{box})
	boxPixels := ref.Frame().Count(Foreground)

	r := NewRasterizer(size, size)
	var done atomic.Bool
	var wg sync.WaitGroup
	var torn atomic.Int64

	wg.Add(1)
	go func() {
		defer wg.Done()
		for !done.Load() {
			n := r.Frame().Count(Foreground)
			if n != 0 && n != boxPixels {
				torn.Add(1)
			}
		}
	}()

	for i := range 200 {
		if i%2 == 0 {
			r.Render(DefaultCamera(), []*models.Mesh{box})
		} else {
			r.Render(DefaultCamera(), nil)
		}
	}
	done.Store(true)
	wg.Wait()

	if torn.Load() != 0 {
		t.Errorf("reader observed %d partially drawn frames", torn.Load())
	}
	if r.Frame().Seq != 200 {
		t.Errorf("Seq = %d, want 200", r.Frame().Seq)
	}
}

func BenchmarkRenderBox(b *testing.B) {
	r := NewRasterizer(600, 600)
	box := testBox(b, math3d.Identity())
	cam := DefaultCamera()
	meshes := []*models.Mesh{box}

	for b.Loop() {
		r.Render(cam, meshes)
	}
}

func BenchmarkRenderScene(b *testing.B) {
	r := NewRasterizer(600, 600)
	sphere, _ := models.NewSphere(1, 32, math3d.Translate(math3d.V3(-2, 0, 0)))
	cylinder, _ := models.NewCylinder(0.5, 2, 64, math3d.Translate(math3d.V3(2, 0, 0)))
	cone, _ := models.NewCone(1, 2, 64, math3d.Translate(math3d.V3(0, 2, 0)))
	meshes := []*models.Mesh{testBox(b, math3d.Identity()), sphere, cylinder, cone}
	cam := DefaultCamera()

	for b.Loop() {
		r.Render(cam, meshes)
	}
}
