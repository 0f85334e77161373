package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/interaction"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/mesh"
	"github.com/annel0/voxel-engine/internal/observability"
	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

const (
	// MaxStep ограничивает dt одного шага
	MaxStep = 0.05
	// MaxHealth - здоровье игрока после появления
	MaxHealth = 20
	eyeHeight = 1.62

	// колонка спавна и точка в её центре
	spawnBlockX, spawnBlockZ = 8, 8
	spawnX, spawnZ           = spawnBlockX + 0.5, spawnBlockZ + 0.5
)

// Recorder получает сводки шагов. metrics.Engine реализует его.
type Recorder interface {
	mesh.Observer
	StepDone(took time.Duration, queueLen int)
	BlockBroken()
	FallDamage(hp int)
}

// Report - что произошло за шаг
type Report struct {
	Tick     uint64              `json:"tick"`
	Position mgl64.Vec3          `json:"position"`
	Grounded bool                `json:"grounded"`
	Health   int                 `json:"health"`
	Hit      *physics.Hit        `json:"hit,omitempty"`
	Broken   *interaction.Broken `json:"broken,omitempty"`
	Placed   bool                `json:"placed"`
	Damage   int                 `json:"damage"`
	Died     bool                `json:"died"`
	Loaded   int                 `json:"dirty_chunks"`
	Rebuilt  int                 `json:"rebuilt"`
	Progress float64             `json:"break_progress"`
}

// Session связывает мир, физику, взаимодействие и перестройку геометрии
// в один шаг симуляции. Методы безопасны для вызова из разных горутин.
type Session struct {
	mu sync.Mutex

	world     *world.World
	registry  block.Lookup
	mesher    *mesh.Mesher
	queue     *mesh.Queue
	body      *physics.Body
	resolver  *physics.Resolver
	raycaster *physics.Raycaster
	breaker   *interaction.Breaker

	reach         float64
	fallThreshold float64
	health        int
	tick          uint64
	recorder      Recorder
	logger        *logging.Logger
	tracer        trace.Tracer
}

// NewSession создаёт сессию и ставит игрока на поверхность в чанке (0,0).
// rec может быть nil.
func NewSession(cfg config.SimConfig, w *world.World, r mesh.Renderer, rec Recorder) *Session {
	reg := w.Registry()

	var obs mesh.Observer
	if rec != nil {
		obs = rec
	}

	s := &Session{
		world:         w,
		registry:      reg,
		mesher:        mesh.NewMesher(mesh.NewBuilder(reg), r, obs),
		queue:         mesh.NewQueue(cfg.ChunksPerStep),
		resolver:      physics.NewResolver(w, reg),
		raycaster:     physics.NewRaycaster(w, reg),
		breaker:       interaction.NewBreaker(w, reg),
		reach:         cfg.Reach,
		fallThreshold: cfg.FallDamageVelocity,
		recorder:      rec,
		logger:        logging.GetSimLogger(),
		tracer:        observability.Tracer(),
	}
	if s.reach <= 0 {
		s.reach = physics.DefaultReach
	}
	if s.fallThreshold <= 0 {
		s.fallThreshold = physics.FallDamageVelocity
	}

	s.body = physics.NewBody(mgl64.Vec3{})
	if cfg.Gravity != 0 {
		s.body.Gravity = cfg.Gravity
	}
	s.spawn(0.1)
	return s
}

// spawn ставит игрока над поверхностью колонки спавна
func (s *Session) spawn(lift float64) {
	cp := world.ChunkPosAt(spawnBlockX, spawnBlockZ)
	s.world.GetOrCreateChunk(cp.X, cp.Z)
	sy := s.world.SurfaceY(spawnBlockX, spawnBlockZ)

	s.body.Teleport(mgl64.Vec3{spawnX, float64(sy) + lift, spawnZ})
	s.body.SetFlying(false)
	s.health = MaxHealth
	s.breaker.Reset()
	s.logger.Info("Игрок появился в (%.1f, %d, %.1f)", spawnX, sy, spawnZ)
}

// Respawn возвращает игрока на точку появления с полным здоровьем
func (s *Session) Respawn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spawn(1)
}

// Step выполняет один шаг: физика, урон от падения, луч, разрушение и установка
// блоков, прогрузка чанков вокруг игрока и перестройка части dirty-чанков.
func (s *Session) Step(ctx context.Context, dt float64, in Input) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "sim.step")
	defer span.End()

	start := time.Now()
	if dt > MaxStep {
		dt = MaxStep
	}
	if dt < 0 {
		dt = 0
	}
	s.tick++
	rep := Report{Tick: s.tick}

	// 1. Управление
	if in.ToggleFly {
		s.body.SetFlying(!s.body.Flying)
	}
	vx, vz := in.walkVelocity(physics.WalkSpeed, physics.SprintSpeed)
	s.body.Velocity[0], s.body.Velocity[2] = vx, vz
	switch {
	case s.body.Flying && in.Jump:
		s.body.Fly(1)
	case s.body.Flying && in.Descend:
		s.body.Fly(-1)
	case s.body.Flying:
		s.body.Fly(0)
	case in.Jump:
		s.body.Jump()
	}

	// 2. Физика и урон от падения
	s.body.Step(s.resolver, dt)
	if landing := s.body.TakeLanding(); landing != 0 {
		if dmg := physics.FallDamage(landing, s.fallThreshold); dmg > 0 {
			rep.Damage = dmg
			s.health -= dmg
			if s.recorder != nil {
				s.recorder.FallDamage(dmg)
			}
			if s.health <= 0 {
				s.health = 0
				rep.Died = true
				s.logger.Info("Игрок погиб от падения (скорость %.1f)", landing)
				s.spawn(1)
			}
		}
	}

	// 3. Луч взгляда
	eye := s.body.Position.Add(mgl64.Vec3{0, eyeHeight, 0})
	hit, ok := s.raycaster.Cast(eye, in.LookDir(), s.reach)
	if ok {
		h := hit
		rep.Hit = &h
	}

	// 4. Разрушение и установка
	if broken, done := s.breaker.Update(hit, ok, in.Break, dt); done {
		rep.Broken = &broken
		if s.recorder != nil {
			s.recorder.BlockBroken()
		}
		s.logger.Debug("Блок %d разрушен в %s", broken.BlockID, broken.Pos)
	}
	rep.Progress = s.breaker.Progress()

	if in.Place != block.AirBlockID && ok && rep.Broken == nil {
		actor := s.body.Shape.BoxAt(s.body.Position)
		_, err := interaction.Place(s.world, s.registry, hit, in.Place, actor)
		switch {
		case err == nil:
			rep.Placed = true
		case errors.Is(err, interaction.ErrInteractive):
			s.logger.Debug("Блок под курсором интерактивный")
		default:
			s.logger.Trace("Блок не поставлен: %v", err)
		}
	}

	// 5. Прогрузка чанков и перестройка геометрии
	dirty := s.world.UpdateAroundPlayer(s.body.Position.X(), s.body.Position.Z())
	rep.Loaded = len(dirty)
	s.queue.Push(dirty...)
	rebuilt, err := s.queue.Step(s.mesher, s.world)
	rep.Rebuilt = rebuilt

	rep.Position = s.body.Position
	rep.Grounded = s.body.Grounded
	rep.Health = s.health

	span.SetAttributes(
		attribute.Int64("sim.tick", int64(s.tick)),
		attribute.Int("sim.dirty_chunks", rep.Loaded),
		attribute.Int("sim.rebuilt", rebuilt),
	)
	if s.recorder != nil {
		s.recorder.StepDone(time.Since(start), s.queue.Len())
	}
	if err != nil {
		span.RecordError(err)
		return rep, err
	}
	return rep, nil
}

// Health возвращает текущее здоровье
func (s *Session) Health() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.health
}

// Body возвращает копию состояния тела игрока
func (s *Session) Body() physics.Body {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.body
}

// PendingMeshes возвращает длину очереди перестройки
func (s *Session) PendingMeshes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Handles возвращает таблицу объектов рендерера
func (s *Session) Handles() *mesh.HandleTable {
	return s.mesher.Handles()
}

// View выполняет fn под блокировкой сессии. Изменения мира внутри fn
// попадут в очередь перестройки на следующем шаге.
func (s *Session) View(fn func(w *world.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.world)
}

// Raycast пускает луч в мир под блокировкой сессии
func (s *Session) Raycast(origin, dir mgl64.Vec3, maxDist float64) (physics.Hit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raycaster.Cast(origin, dir, maxDist)
}

// Teleport переносит игрока в pos
func (s *Session) Teleport(pos mgl64.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body.Teleport(pos)
	s.breaker.Reset()
}
