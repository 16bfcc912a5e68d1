package physics

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestRemoveFromEmptyWorld(t *testing.T) {
	w := NewWorld(DefaultSettings())

	if w.RemoveLastBody() {
		t.Error("expected no removal from empty body list")
	}
	if w.RemoveLastObstacle() {
		t.Error("expected no removal from empty obstacle list")
	}
	if n, m := w.Len(); n != 0 || m != 0 {
		t.Errorf("expected empty world, got %d bodies %d obstacles", n, m)
	}
}

func TestRemoveLastIsLIFO(t *testing.T) {
	w := NewWorld(DefaultSettings())
	first := w.AddBody(r2.Point{X: 100, Y: 100}, 10)
	w.AddBody(r2.Point{X: 300, Y: 100}, 10)
	w.AddObstacle(r2.Point{X: 500, Y: 500}, 10)

	w.RemoveLastBody()

	if len(w.Bodies()) != 1 || w.Bodies()[0] != first {
		t.Errorf("expected first body to remain, got %v", w.Bodies())
	}
	if len(w.Obstacles()) != 1 {
		t.Errorf("obstacles should be untouched, got %d", len(w.Obstacles()))
	}
}

func TestAllOrdersBodiesBeforeObstacles(t *testing.T) {
	w := NewWorld(DefaultSettings())
	o := w.AddObstacle(r2.Point{X: 100, Y: 100}, 10)
	b := w.AddBody(r2.Point{X: 300, Y: 100}, 10)

	all := w.All()
	if len(all) != 2 || all[0] != b || all[1] != o {
		t.Errorf("unexpected order: %v", all)
	}
}

func TestBeginDrag(t *testing.T) {
	w := NewWorld(DefaultSettings())
	a := w.AddBody(r2.Point{X: 100, Y: 100}, 10)
	b := w.AddBody(r2.Point{X: 105, Y: 100}, 10)
	w.AddObstacle(r2.Point{X: 400, Y: 400}, 30)

	if got := w.BeginDrag(r2.Point{X: 102, Y: 100}); got != a {
		t.Fatalf("expected first body in insertion order, got %v", got)
	}
	if !a.Dragging || b.Dragging {
		t.Error("only the picked body may be dragging")
	}

	w.EndDrag(a)
	if a.Dragging || w.Dragged() != nil {
		t.Error("drag not released")
	}

	if got := w.BeginDrag(r2.Point{X: 400, Y: 400}); got != nil {
		t.Error("obstacles must not be draggable")
	}
	if got := w.BeginDrag(r2.Point{X: 700, Y: 50}); got != nil {
		t.Errorf("expected nil for empty point, got %v", got)
	}
	for _, body := range w.All() {
		if body.Dragging {
			t.Error("miss must not mutate any body")
		}
	}
}

func TestBeginDragSingleOwner(t *testing.T) {
	w := NewWorld(DefaultSettings())
	a := w.AddBody(r2.Point{X: 100, Y: 100}, 10)
	b := w.AddBody(r2.Point{X: 300, Y: 100}, 10)

	w.BeginDrag(r2.Point{X: 100, Y: 100})
	w.BeginDrag(r2.Point{X: 300, Y: 100})

	if a.Dragging || !b.Dragging || w.Dragged() != b {
		t.Error("expected the second drag to replace the first")
	}
}

func TestBeginDragMissKeepsActiveDrag(t *testing.T) {
	w := NewWorld(DefaultSettings())
	a := w.AddBody(r2.Point{X: 100, Y: 100}, 10)

	w.BeginDrag(r2.Point{X: 100, Y: 100})
	if got := w.BeginDrag(r2.Point{X: 700, Y: 500}); got != nil {
		t.Fatalf("expected nil for empty point, got %v", got)
	}
	if !a.Dragging || w.Dragged() != a {
		t.Errorf("miss released the active drag: dragging=%v dragged=%v", a.Dragging, w.Dragged())
	}
}

func TestDragFreezesBody(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := w.AddBody(r2.Point{X: 100, Y: 100}, 10)

	w.BeginDrag(r2.Point{X: 100, Y: 100})
	w.UpdateDrag(b, r2.Point{X: 250, Y: 80})
	for i := 0; i < 10; i++ {
		w.Step()
	}

	if b.Pos != (r2.Point{X: 250, Y: 80}) {
		t.Errorf("dragged body moved to %v", b.Pos)
	}
	if b.Vel != (r2.Point{}) {
		t.Errorf("dragged body accumulated velocity %v", b.Vel)
	}

	w.EndDrag(b)
	w.Step()
	if b.Vel.Y != w.Settings().Gravity {
		t.Errorf("expected release from rest, got %v", b.Vel)
	}
}

func TestRemoveDraggedBodyEndsDrag(t *testing.T) {
	w := NewWorld(DefaultSettings())
	w.AddBody(r2.Point{X: 100, Y: 100}, 10)
	w.BeginDrag(r2.Point{X: 100, Y: 100})

	w.RemoveLastBody()

	if w.Dragged() != nil {
		t.Error("removing the dragged body should end the drag")
	}
}

func TestBodySettlesOnFloor(t *testing.T) {
	w := NewWorld(DefaultSettings())
	b := w.AddBody(r2.Point{X: 400, Y: 0}, 10)

	for i := 0; i < 5000; i++ {
		w.Step()
	}

	if b.Pos.Y+b.Radius != w.Settings().Height {
		t.Errorf("expected body resting on floor, y+r = %f", b.Pos.Y+b.Radius)
	}
	if b.Vel.Y >= 0 {
		t.Errorf("expected damped upward velocity after floor bounce, got %f", b.Vel.Y)
	}
	if b.Pos.X != 400 {
		t.Errorf("no horizontal drift expected, x = %f", b.Pos.X)
	}
}

func TestStepResolvesApproachingPair(t *testing.T) {
	w := NewWorld(DefaultSettings())
	w.SetGravityEnabled(false)
	a := w.AddBody(r2.Point{X: 100, Y: 300}, 10)
	b := w.AddBody(r2.Point{X: 115, Y: 300}, 10)
	a.Vel = r2.Point{X: 2}
	b.Vel = r2.Point{X: -2}

	w.Step()

	if d := b.Pos.Sub(a.Pos).Norm(); d < 20-eps {
		t.Errorf("bodies still overlap, distance %f", d)
	}
	want := 2 * DefaultElasticity
	if math.Abs(a.Vel.X+want) > eps || math.Abs(b.Vel.X-want) > eps {
		t.Errorf("expected swapped scaled velocities ±%f, got %v %v", want, a.Vel, b.Vel)
	}
	if w.Contacts() != 1 {
		t.Errorf("expected 1 contact, got %d", w.Contacts())
	}
}

func TestObstacleNeverMovesDuringStep(t *testing.T) {
	w := NewWorld(DefaultSettings())
	o := w.AddObstacle(r2.Point{X: 400, Y: 300}, 25)
	for i := 0; i < 8; i++ {
		w.AddBody(r2.Point{X: 390 + float64(i)*3, Y: 250 + float64(i)*8}, 8)
	}

	for i := 0; i < 600; i++ {
		w.Step()
	}

	if o.Pos != (r2.Point{X: 400, Y: 300}) || o.Vel != (r2.Point{}) {
		t.Errorf("obstacle changed: pos %v vel %v", o.Pos, o.Vel)
	}
}

func TestTogglePause(t *testing.T) {
	w := NewWorld(DefaultSettings())
	if !w.TogglePause() || !w.Paused() {
		t.Error("expected paused after first toggle")
	}
	if w.TogglePause() {
		t.Error("expected running after second toggle")
	}
}
