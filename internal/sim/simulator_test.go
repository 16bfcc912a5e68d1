package sim_test

import (
	"bytes"
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/r2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/marblebox/internal/config"
	"github.com/san-kum/marblebox/internal/physics"
	"github.com/san-kum/marblebox/internal/sim"
)

type countingMetric struct{ n int }

func (c *countingMetric) Name() string           { return "count" }
func (c *countingMetric) Observe(*physics.World) { c.n++ }
func (c *countingMetric) Value() float64         { return float64(c.n) }
func (c *countingMetric) Reset()                 { c.n = 0 }

type inputFunc func(tick uint64) error

func (f inputFunc) Poll(tick uint64) error { return f(tick) }

type observerFunc func(tick uint64, w *physics.World)

func (f observerFunc) OnStep(tick uint64, w *physics.World) { f(tick, w) }

var _ = Describe("Simulator", func() {
	var (
		world  *physics.World
		frames []sim.Frame
		s      *sim.Simulator
	)

	BeforeEach(func() {
		world = physics.NewWorld(physics.DefaultSettings())
		frames = nil
		s = sim.New(world, sim.RendererFunc(func(f sim.Frame) {
			frames = append(frames, f)
		}))
	})

	It("rejects a non-positive frame count", func() {
		_, err := s.Run(context.Background(), sim.Config{Frames: 0})
		Expect(errors.Is(err, sim.ErrInvalidFrames)).To(BeTrue())
	})

	It("steps, measures and renders every tick", func() {
		world.AddBody(r2.Point{X: 100, Y: 100}, 10)
		world.AddObstacle(r2.Point{X: 600, Y: 500}, 20)
		m := &countingMetric{}
		s.AddMetric(m)

		res, err := s.Run(context.Background(), sim.Config{Frames: 30})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(Equal(30))
		Expect(res.Steps).To(Equal(30))
		Expect(res.Energy).To(HaveLen(30))
		Expect(res.Metrics).To(HaveKeyWithValue("count", 30.0))
		Expect(world.Frames()).To(BeEquivalentTo(30))

		Expect(frames).To(HaveLen(30))
		last := frames[len(frames)-1]
		Expect(last.Bodies).To(HaveLen(2))
		Expect(last.Bodies[0].Static).To(BeFalse())
		Expect(last.Bodies[1].Static).To(BeTrue())
		Expect(last.Marbles).To(Equal(1))
		Expect(last.Obstacles).To(Equal(1))
	})

	It("idles while paused without stepping or rendering", func() {
		b := world.AddBody(r2.Point{X: 100, Y: 100}, 10)
		world.SetPaused(true)

		res, err := s.Run(context.Background(), sim.Config{Frames: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(Equal(10))
		Expect(res.Steps).To(BeZero())
		Expect(frames).To(BeEmpty())
		Expect(b.Pos).To(Equal(r2.Point{X: 100, Y: 100}))
	})

	It("polls inputs before the step of their tick", func() {
		var seen []uint64
		s.AddInput(inputFunc(func(tick uint64) error {
			seen = append(seen, tick)
			if tick == 2 {
				world.AddBody(r2.Point{X: 400, Y: 300}, 10)
			}
			return nil
		}))

		_, err := s.Run(context.Background(), sim.Config{Frames: 4})
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal([]uint64{0, 1, 2, 3}))
		Expect(frames[1].Marbles).To(Equal(0))
		Expect(frames[2].Marbles).To(Equal(1))
	})

	It("stops on an input error", func() {
		boom := errors.New("boom")
		s.AddInput(inputFunc(func(tick uint64) error {
			if tick == 3 {
				return boom
			}
			return nil
		}))

		res, err := s.Run(context.Background(), sim.Config{Frames: 10})
		Expect(err).To(MatchError(boom))
		Expect(res.Steps).To(Equal(3))
	})

	It("notifies observers after each step but not while paused", func() {
		var seen []uint64
		s.AddObserver(observerFunc(func(tick uint64, _ *physics.World) { seen = append(seen, tick) }))

		_, err := s.Tick()
		Expect(err).NotTo(HaveOccurred())
		world.SetPaused(true)
		stepped, err := s.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(stepped).To(BeFalse())
		world.SetPaused(false)
		_, err = s.Tick()
		Expect(err).NotTo(HaveOccurred())

		Expect(seen).To(Equal([]uint64{1, 3}))
	})

	It("logs steps with contacts at debug level", func() {
		var buf bytes.Buffer
		logger := log.New(&buf)
		logger.SetLevel(log.DebugLevel)
		s.AddObserver(sim.NewContactLogger(logger))

		world.AddBody(r2.Point{X: 100, Y: 100}, 10)
		_, err := s.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(BeEmpty())

		world.AddBody(r2.Point{X: 105, Y: 100}, 10)
		_, err = s.Tick()
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("contacts"))
	})

	It("honours context cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Run(ctx, sim.Config{Frames: 5})
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one world per seed", func() {
		cfg := config.DefaultConfig()
		cfg.Spawn.Bodies = 10
		cfg.Spawn.Obstacles = 2

		results, err := sim.NewEnsemble(cfg, 4, 100).
			WithMetrics(func() []sim.Metric { return []sim.Metric{&countingMetric{}} }).
			Run(context.Background(), 50)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for i, r := range results {
			Expect(r.Seed).To(BeEquivalentTo(100 + i))
			Expect(r.Steps).To(Equal(50))
			Expect(r.Metrics["count"]).To(Equal(50.0))
		}
	})

	It("is deterministic for a seed", func() {
		cfg := config.GetPreset("pegboard")
		a, err := sim.RunSeeded(context.Background(), cfg, 9, 120, nil)
		Expect(err).NotTo(HaveOccurred())
		b, err := sim.RunSeeded(context.Background(), cfg, 9, 120, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Energy).To(Equal(b.Energy))
	})
})
