package metrics

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/san-kum/solarsim/internal/physics"
)

const namespace = "solarsim"

// Exporter publishes simulation progress as Prometheus metrics. It is an
// observer for sim.Runner and owns its own registry.
type Exporter struct {
	registry *prometheus.Registry
	steps    prometheus.Counter
	elapsed  prometheus.Gauge
	energy   prometheus.Gauge
	distance *prometheus.GaugeVec
	speed    *prometheus.GaugeVec
}

func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Number of simulation steps taken.",
		}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elapsed_seconds",
			Help:      "Simulated time since the start of the run.",
		}),
		energy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_energy_joules",
			Help:      "Total mechanical energy of the system.",
		}),
		distance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "body_distance_meters",
			Help:      "Planar distance of each body from the origin.",
		}, []string{"body"}),
		speed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "body_speed_meters_per_second",
			Help:      "Speed of each body.",
		}, []string{"body"}),
	}
	e.registry.MustRegister(e.steps, e.elapsed, e.energy, e.distance, e.speed)
	return e
}

func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

func (e *Exporter) OnStep(bodies []physics.Snapshot, t float64) {
	e.steps.Inc()
	e.elapsed.Set(t)
	e.energy.Set(physics.TotalEnergy(bodies))
	for _, b := range bodies {
		e.distance.WithLabelValues(b.Name).Set(math.Hypot(b.Pos.X, b.Pos.Y))
		e.speed.WithLabelValues(b.Name).Set(math.Sqrt(b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y + b.Vel.Z*b.Vel.Z))
	}
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (e *Exporter) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
