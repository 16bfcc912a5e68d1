package control_test

import (
	"github.com/golang/geo/r2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/control"
	"github.com/san-kum/marblebox/internal/physics"
)

var _ = Describe("Controller", func() {
	var (
		cfg   *config.Config
		world *physics.World
		ctl   *control.Controller
	)

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		world = cfg.NewWorld()
		ctl = control.New(world, cfg.Spawn, 7)
	})

	Describe("spawning", func() {
		It("places random marbles fully inside the bounds", func() {
			for i := 0; i < 200; i++ {
				b := ctl.SpawnBody()
				Expect(b.Static).To(BeFalse())
				Expect(b.Radius).To(BeNumerically(">=", cfg.Spawn.MinRadius))
				Expect(b.Radius).To(BeNumerically("<", cfg.Spawn.MaxRadius))
				Expect(b.Pos.X - b.Radius).To(BeNumerically(">=", 0))
				Expect(b.Pos.X + b.Radius).To(BeNumerically("<=", cfg.World.Width))
				Expect(b.Pos.Y - b.Radius).To(BeNumerically(">=", 0))
				Expect(b.Pos.Y + b.Radius).To(BeNumerically("<=", cfg.World.Height))
			}
			Expect(world.Bodies()).To(HaveLen(200))
		})

		It("places obstacles as static bodies", func() {
			o := ctl.SpawnObstacle()
			Expect(o.Static).To(BeTrue())
			Expect(world.Obstacles()).To(ConsistOf(o))
			Expect(world.Bodies()).To(BeEmpty())
		})

		It("is reproducible for a fixed seed", func() {
			other := control.New(cfg.NewWorld(), cfg.Spawn, 7)
			Expect(ctl.SpawnBody().Pos).To(Equal(other.SpawnBody().Pos))
		})

		It("populates the configured scene", func() {
			spawn := cfg.Spawn
			spawn.Bodies, spawn.Obstacles = 4, 3
			control.New(world, spawn, 1).Populate()
			Expect(world.Bodies()).To(HaveLen(4))
			Expect(world.Obstacles()).To(HaveLen(3))
		})
	})

	Describe("deleting", func() {
		It("is a silent no-op on an empty world", func() {
			Expect(ctl.DeleteLastBody()).To(BeFalse())
			Expect(ctl.DeleteLastObstacle()).To(BeFalse())
			Expect(world.All()).To(BeEmpty())
		})

		It("removes the most recent marble", func() {
			first := ctl.SpawnBody()
			ctl.SpawnBody()
			Expect(ctl.DeleteLastBody()).To(BeTrue())
			Expect(world.Bodies()).To(ConsistOf(first))
		})
	})

	Describe("flags", func() {
		It("toggles gravity and pause", func() {
			Expect(ctl.ToggleGravity()).To(BeFalse())
			Expect(world.GravityEnabled()).To(BeFalse())
			Expect(ctl.TogglePause()).To(BeTrue())
			Expect(world.Paused()).To(BeTrue())
		})
	})

	Describe("pointer drag", func() {
		var b *physics.Body

		BeforeEach(func() {
			b = ctl.SpawnBodyAt(r2.Point{X: 200, Y: 200}, 15)
		})

		It("drags the marble under the pointer", func() {
			Expect(ctl.PointerDown(r2.Point{X: 205, Y: 195})).To(BeTrue())
			ctl.PointerMove(r2.Point{X: 300, Y: 120})
			Expect(b.Pos).To(Equal(r2.Point{X: 300, Y: 120}))
			Expect(b.Dragging).To(BeTrue())

			ctl.PointerUp()
			Expect(b.Dragging).To(BeFalse())
			Expect(world.Dragged()).To(BeNil())
		})

		It("ignores moves when nothing is dragged", func() {
			Expect(ctl.PointerDown(r2.Point{X: 700, Y: 500})).To(BeFalse())
			ctl.PointerMove(r2.Point{X: 10, Y: 10})
			ctl.PointerUp()
			Expect(b.Pos).To(Equal(r2.Point{X: 200, Y: 200}))
		})
	})

	Describe("Apply", func() {
		It("runs placed spawn commands", func() {
			Expect(ctl.Apply(control.Command{Action: control.SpawnObstacle, X: 50, Y: 60, Radius: 9, Placed: true})).To(Succeed())
			Expect(world.Obstacles()).To(HaveLen(1))
			Expect(world.Obstacles()[0].Pos).To(Equal(r2.Point{X: 50, Y: 60}))
			Expect(world.Obstacles()[0].Radius).To(Equal(9.0))
		})

		It("drives a full drag lifecycle", func() {
			b := ctl.SpawnBodyAt(r2.Point{X: 400, Y: 300}, 10)
			for _, cmd := range []control.Command{
				{Action: control.PointerDown, X: 401, Y: 300},
				{Action: control.PointerMove, X: 420, Y: 310},
				{Action: control.PointerUp},
			} {
				Expect(ctl.Apply(cmd)).To(Succeed())
			}
			Expect(b.Pos).To(Equal(r2.Point{X: 420, Y: 310}))
			Expect(b.Dragging).To(BeFalse())
		})

		It("rejects unknown actions", func() {
			err := ctl.Apply(control.Command{Action: "explode"})
			Expect(err).To(MatchError(control.ErrUnknownAction))
		})
	})
})
