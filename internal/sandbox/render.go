package sandbox

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const nodeRadius = 7.0

var labelFace = text.NewGoXFace(basicfont.Face7x13)

var (
	canvasBg    = color.RGBA{R: 16, G: 18, B: 22, A: 255}
	windowBg    = color.RGBA{R: 10, G: 11, B: 14, A: 255}
	boundsCol   = color.RGBA{R: 45, G: 52, B: 66, A: 255}
	pipeCol     = color.RGBA{R: 120, G: 144, B: 180, A: 255}
	nodeFill    = color.RGBA{R: 72, G: 120, B: 190, A: 255}
	nodeStroke  = color.RGBA{R: 150, G: 190, B: 240, A: 255}
	selectCol   = color.RGBA{R: 240, G: 200, B: 80, A: 255}
	hoverCol    = color.RGBA{R: 220, G: 225, B: 235, A: 255}
	tweenCol    = color.RGBA{R: 90, G: 200, B: 140, A: 120}
	labelCol    = color.RGBA{R: 200, G: 210, B: 225, A: 255}
	borderCol   = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	borderFaint = color.RGBA{R: 40, G: 48, B: 62, A: 100}
)

// Draw renders the full frame: canvas, border, event panel, HUD. It runs
// every frame with no dirty-tracking; only the transform recompute is
// skipped on quiet frames.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(windowBg)

	if a.canvas == nil {
		a.canvas = ebiten.NewImage(a.canvasW, a.canvasH)
	}
	a.canvas.Fill(canvasBg)
	a.drawWorld(a.canvas)

	var blit ebiten.DrawImageOptions
	blit.GeoM.Translate(borderWidth, borderWidth)
	screen.DrawImage(a.canvas, &blit)

	// Canvas frame.
	vector.StrokeRect(screen, borderWidth-1, borderWidth-1,
		float32(a.canvasW)+2, float32(a.canvasH)+2, 2.0, borderCol, false)
	vector.StrokeRect(screen, borderWidth-3, borderWidth-3,
		float32(a.canvasW)+6, float32(a.canvasH)+6, 1.0, borderFaint, false)

	a.log.Draw(screen, borderWidth+a.canvasW+borderWidth, a.height)

	if a.showHUD {
		a.drawHUD(screen)
	}
}

func (a *App) drawWorld(canvas *ebiten.Image) {
	// World bounds outline, so the content rectangle is visible even empty.
	b := a.store.Bounds()
	bx0, by0 := a.tf.ToScreen(b.MinX, b.MinY)
	bx1, by1 := a.tf.ToScreen(b.MinX+b.W, b.MinY+b.H)
	vector.StrokeRect(canvas, float32(bx0), float32(by0),
		float32(bx1-bx0), float32(by1-by0), 1.0, boundsCol, false)

	// Pipes under nodes.
	for _, e := range a.store.Edges() {
		from, okF := a.store.Node(e.From)
		to, okT := a.store.Node(e.To)
		if !okF || !okT {
			continue
		}
		x0, y0 := a.tf.ToScreen(from.X, from.Y)
		x1, y1 := a.tf.ToScreen(to.X, to.Y)
		vector.StrokeLine(canvas, float32(x0), float32(y0), float32(x1), float32(y1), 3.0, pipeCol, true)
	}

	// In-flight moves: a faint line from the node to its target.
	for _, n := range a.store.Nodes() {
		if !n.Animating() {
			continue
		}
		tx, ty := n.Target()
		x0, y0 := a.tf.ToScreen(n.X, n.Y)
		x1, y1 := a.tf.ToScreen(tx, ty)
		vector.StrokeLine(canvas, float32(x0), float32(y0), float32(x1), float32(y1), 1.0, tweenCol, true)
	}

	sel := a.store.Selected()
	hover := a.store.Hover()
	for _, n := range a.store.Nodes() {
		sx, sy := a.tf.ToScreen(n.X, n.Y)
		vector.FillCircle(canvas, float32(sx), float32(sy), nodeRadius, nodeFill, true)
		vector.StrokeCircle(canvas, float32(sx), float32(sy), nodeRadius, 1.5, nodeStroke, true)
		if n == sel {
			vector.StrokeCircle(canvas, float32(sx), float32(sy), nodeRadius+4, 2.0, selectCol, true)
		} else if n == hover {
			vector.StrokeCircle(canvas, float32(sx), float32(sy), nodeRadius+3, 1.0, hoverCol, true)
		}

		op := &text.DrawOptions{}
		op.GeoM.Translate(sx+nodeRadius+3, sy-nodeRadius-4)
		op.ColorScale.ScaleWithColor(labelCol)
		text.Draw(canvas, fmt.Sprintf("%d", n.ID), labelFace, op)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	status := fmt.Sprintf("nodes:%d pipes:%d mode:%s",
		a.store.NodeCount(), a.store.EdgeCount(), genModes[a.genMode])
	if sel := a.store.Selected(); sel != nil {
		status += fmt.Sprintf("  selected:%d", sel.ID)
	}
	ebitenutil.DebugPrintAt(screen, status, borderWidth+6, borderWidth+6)
	ebitenutil.DebugPrintAt(screen,
		"[click] place/select/connect  [R] reset  [G] generate  [Tab] mode  [C] copy  [H] hud",
		borderWidth+6, a.height-borderWidth+4)
}
