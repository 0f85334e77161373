package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// Engine собирает метрики движка. Реализует world.Observer и mesh.Observer.
//
// Метрики:
// * chunks_generated_total - counter
// * chunk_generation_seconds - histogram
// * block_changes_total{kind} - counter (place/break/replace)
// * mesh_rebuilds_total - counter
// * mesh_rebuild_seconds - histogram
// * mesh_quads - histogram граней на чанк
// * sim_step_seconds - histogram
// * mesh_queue_length - gauge
// * blocks_broken_total, fall_damage_total - counter
type Engine struct {
	chunksGenerated prometheus.Counter
	chunkGenSeconds prometheus.Histogram
	blockChanges    *prometheus.CounterVec
	meshRebuilds    prometheus.Counter
	meshSeconds     prometheus.Histogram
	meshQuads       prometheus.Histogram
	stepSeconds     prometheus.Histogram
	queueLength     prometheus.Gauge
	blocksBroken    prometheus.Counter
	fallDamage      prometheus.Counter
}

// NewEngine создаёт метрики и регистрирует их в reg.
// reg == nil означает регистр по умолчанию.
func NewEngine(namespace string, reg prometheus.Registerer) *Engine {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	buckets := []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1}

	e := &Engine{
		chunksGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_generated_total",
			Help:      "Количество сгенерированных чанков.",
		}),
		chunkGenSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_generation_seconds",
			Help:      "Время генерации одного чанка.",
			Buckets:   buckets,
		}),
		blockChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_changes_total",
			Help:      "Изменения блоков через SetBlock.",
		}, []string{"kind"}),
		meshRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_rebuilds_total",
			Help:      "Количество перестроек геометрии.",
		}),
		meshSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_rebuild_seconds",
			Help:      "Время перестройки геометрии чанка.",
			Buckets:   buckets,
		}),
		meshQuads: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_quads",
			Help:      "Число видимых граней в чанке.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
		}),
		stepSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sim_step_seconds",
			Help:      "Длительность шага симуляции.",
			Buckets:   buckets,
		}),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_queue_length",
			Help:      "Чанков в очереди на перестройку.",
		}),
		blocksBroken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_broken_total",
			Help:      "Разрушенные игроком блоки.",
		}),
		fallDamage: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fall_damage_total",
			Help:      "Суммарный урон от падений.",
		}),
	}

	reg.MustRegister(
		e.chunksGenerated, e.chunkGenSeconds, e.blockChanges,
		e.meshRebuilds, e.meshSeconds, e.meshQuads,
		e.stepSeconds, e.queueLength, e.blocksBroken, e.fallDamage,
	)
	return e
}

// ChunkGenerated реализует world.Observer
func (e *Engine) ChunkGenerated(_ world.ChunkPos, took time.Duration) {
	e.chunksGenerated.Inc()
	e.chunkGenSeconds.Observe(took.Seconds())
}

// BlockChanged реализует world.Observer
func (e *Engine) BlockChanged(_ vec.Vec3, prev, next block.BlockID) {
	e.blockChanges.WithLabelValues(changeKind(prev, next)).Inc()
}

func changeKind(prev, next block.BlockID) string {
	switch {
	case next == block.AirBlockID:
		return "break"
	case prev == block.AirBlockID:
		return "place"
	default:
		return "replace"
	}
}

// MeshBuilt реализует mesh.Observer
func (e *Engine) MeshBuilt(_ world.ChunkPos, quads int, took time.Duration) {
	e.meshRebuilds.Inc()
	e.meshSeconds.Observe(took.Seconds())
	e.meshQuads.Observe(float64(quads))
}

// StepDone фиксирует длительность шага и длину очереди
func (e *Engine) StepDone(took time.Duration, queueLen int) {
	e.stepSeconds.Observe(took.Seconds())
	e.queueLength.Set(float64(queueLen))
}

// BlockBroken учитывает разрушенный блок
func (e *Engine) BlockBroken() {
	e.blocksBroken.Inc()
}

// FallDamage учитывает урон от падения
func (e *Engine) FallDamage(hp int) {
	e.fallDamage.Add(float64(hp))
}
