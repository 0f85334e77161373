package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/physics"
	"github.com/annel0/voxel-engine/internal/render"
	"github.com/annel0/voxel-engine/internal/sim"
	"github.com/annel0/voxel-engine/internal/world"
	"github.com/annel0/voxel-engine/internal/world/block"
)

// maxCoordinate ограничивает координаты, приходящие в запросах
const maxCoordinate = 1 << 30

// BlockResponse описывает блок в мировых координатах
type BlockResponse struct {
	X    int           `json:"x"`
	Y    int           `json:"y"`
	Z    int           `json:"z"`
	ID   block.BlockID `json:"id"`
	Name string        `json:"name"`
}

// SetBlockRequest - тело PUT /api/v1/blocks
type SetBlockRequest struct {
	X  int            `json:"x"`
	Y  int            `json:"y"`
	Z  int            `json:"z"`
	ID *block.BlockID `json:"id" binding:"required"`
}

// ChunkResponse - сводка по чанку
type ChunkResponse struct {
	CX       int    `json:"cx"`
	CZ       int    `json:"cz"`
	Dirty    bool   `json:"dirty"`
	NonAir   int    `json:"non_air"`
	Checksum string `json:"checksum"`
	HasMesh  bool   `json:"has_mesh"`
}

// RaycastRequest - тело POST /api/v1/raycast
type RaycastRequest struct {
	Origin  [3]float64 `json:"origin"`
	Dir     [3]float64 `json:"dir"`
	MaxDist *float64   `json:"max_dist"`
}

// RaycastResponse - результат луча
type RaycastResponse struct {
	Hit      bool          `json:"hit"`
	Block    *[3]int       `json:"block,omitempty"`
	Normal   *[3]int       `json:"normal,omitempty"`
	ID       block.BlockID `json:"id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Distance float64       `json:"distance,omitempty"`
}

// InputRequest - тело POST /api/v1/input: ввод и число шагов, которые он держится
type InputRequest struct {
	sim.Input
	Steps int `json:"steps"`
}

// StatsResponse - состояние движка
type StatsResponse struct {
	Chunks        int             `json:"chunks"`
	DirtyChunks   int             `json:"dirty_chunks"`
	PendingMeshes int             `json:"pending_meshes"`
	PendingInputs int             `json:"pending_inputs"`
	Handles       int             `json:"handles"`
	Health        int             `json:"health"`
	Player        [3]float64      `json:"player"`
	Flying        bool            `json:"flying"`
	Render        *render.Stats   `json:"render,omitempty"`
	Process       ProcessSnapshot `json:"process"`
}

// handleHealth обрабатывает проверку здоровья
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Engine is healthy",
		Data: map[string]interface{}{
			"uptime": rs.metrics.GetUptime(),
		},
	})
}

// handleGetBlock возвращает блок в точке ?x=&y=&z=
func (rs *RestServer) handleGetBlock(c *gin.Context) {
	x, y, z, err := queryInts(c, "x", "y", "z")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var resp BlockResponse
	rs.session.View(func(w *world.World) {
		id := w.GetBlock(x, y, z)
		resp = BlockResponse{X: x, Y: y, Z: z, ID: id, Name: w.Registry().Definition(id).Name}
	})

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Block retrieved", Data: resp})
}

// handleSetBlock записывает блок. Неизвестный ID и выход за высоту мира дают 400.
func (rs *RestServer) handleSetBlock(c *gin.Context) {
	var req SetBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	if !world.InVerticalRange(req.Y) {
		badRequest(c, fmt.Sprintf("y=%d is outside the world height", req.Y))
		return
	}

	var (
		resp  BlockResponse
		known bool
		prev  block.BlockID
	)
	rs.session.View(func(w *world.World) {
		reg := w.Registry()
		def, ok := reg.Get(*req.ID)
		if !ok {
			return
		}
		known = true
		prev = w.GetBlock(req.X, req.Y, req.Z)
		w.SetBlock(req.X, req.Y, req.Z, *req.ID)
		resp = BlockResponse{X: req.X, Y: req.Y, Z: req.Z, ID: def.ID, Name: def.Name}
	})
	if !known {
		badRequest(c, fmt.Sprintf("unknown block id %d", *req.ID))
		return
	}

	rs.logger.Info("Блок (%d,%d,%d): %d -> %d", req.X, req.Y, req.Z, prev, *req.ID)
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Block updated", Data: resp})
}

// handleSurface возвращает высоту поверхности колонки ?x=&z=
func (rs *RestServer) handleSurface(c *gin.Context) {
	x, _, z, err := queryInts(c, "x", "", "z")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var y int
	rs.session.View(func(w *world.World) {
		y = w.SurfaceY(x, z)
	})

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Surface retrieved",
		Data:    map[string]int{"x": x, "y": y, "z": z},
	})
}

// handleChunk возвращает сводку по загруженному чанку.
// С ?create=true отсутствующий чанк генерируется.
func (rs *RestServer) handleChunk(c *gin.Context) {
	pos, ok := chunkParams(c)
	if !ok {
		return
	}
	create := c.Query("create") == "true"

	var resp *ChunkResponse
	rs.session.View(func(w *world.World) {
		ch := w.GetChunk(pos.X, pos.Z)
		if ch == nil && create {
			ch = w.GetOrCreateChunk(pos.X, pos.Z)
		}
		if ch == nil {
			return
		}
		_, hasMesh := rs.session.Handles().Get(pos)
		resp = &ChunkResponse{
			CX:       pos.X,
			CZ:       pos.Z,
			Dirty:    ch.Dirty(),
			NonAir:   ch.CountNonAir(),
			Checksum: fmt.Sprintf("%016x", ch.Checksum()),
			HasMesh:  hasMesh,
		}
	})
	if resp == nil {
		notFound(c, "Chunk "+pos.String()+" is not loaded")
		return
	}

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Chunk retrieved", Data: resp})
}

// handleChunkRaw отдаёт блоки чанка, сжатые zstd
func (rs *RestServer) handleChunkRaw(c *gin.Context) {
	pos, ok := chunkParams(c)
	if !ok {
		return
	}

	var (
		raw []byte
		sum uint64
	)
	rs.session.View(func(w *world.World) {
		if ch := w.GetChunk(pos.X, pos.Z); ch != nil {
			raw = ch.Bytes()
			sum = ch.Checksum()
		}
	})
	if raw == nil {
		notFound(c, "Chunk "+pos.String()+" is not loaded")
		return
	}

	compressed := rs.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/8))
	c.Header("Content-Encoding", "zstd")
	c.Header("X-Chunk-Checksum", fmt.Sprintf("%016x", sum))
	c.Header("X-Chunk-Size", strconv.Itoa(len(raw)))
	c.Data(http.StatusOK, "application/octet-stream", compressed)
}

// handleRaycast пускает луч. dir нормируется; без max_dist используется
// дальность по умолчанию, сверху она ограничена зоной прогрузки.
func (rs *RestServer) handleRaycast(c *gin.Context) {
	var req RaycastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}

	origin := mgl64.Vec3(req.Origin)
	dir := mgl64.Vec3(req.Dir)
	if !physics.ValidDirection(dir) {
		badRequest(c, "dir must be a finite non-zero vector")
		return
	}
	for _, v := range origin {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxCoordinate {
			badRequest(c, "origin is out of range")
			return
		}
	}
	dir = dir.Normalize()

	maxDist := physics.DefaultReach
	if req.MaxDist != nil {
		maxDist = *req.MaxDist
	}
	if maxDist < 0 || math.IsNaN(maxDist) || math.IsInf(maxDist, 0) {
		badRequest(c, "max_dist must be a finite non-negative number")
		return
	}
	if limit := rs.rayLimit(); maxDist > limit {
		maxDist = limit
	}

	hit, ok := rs.session.Raycast(origin, dir, maxDist)

	resp := RaycastResponse{Hit: ok}
	if ok {
		b := [3]int{hit.Block.X, hit.Block.Y, hit.Block.Z}
		n := [3]int{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
		resp.Block, resp.Normal = &b, &n
		resp.ID = hit.BlockID
		resp.Distance = hit.Distance
		rs.session.View(func(w *world.World) {
			resp.Name = w.Registry().Definition(hit.BlockID).Name
		})
	}

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Raycast done", Data: resp})
}

// handleInput ставит ввод в очередь цикла симуляции
func (rs *RestServer) handleInput(c *gin.Context) {
	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	if req.Steps > sim.MaxQueuedSteps {
		badRequest(c, fmt.Sprintf("steps must be <= %d", sim.MaxQueuedSteps))
		return
	}
	if req.Place != block.AirBlockID {
		known := false
		rs.session.View(func(w *world.World) { _, known = w.Registry().Get(req.Place) })
		if !known {
			badRequest(c, fmt.Sprintf("unknown block id %d", req.Place))
			return
		}
	}

	if err := rs.inputs.Push(req.Input, req.Steps); err != nil {
		c.JSON(http.StatusTooManyRequests, GenericResponse{Success: false, Message: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, GenericResponse{
		Success: true,
		Message: "Input queued",
		Data:    map[string]int{"pending": rs.inputs.Len()},
	})
}

// handleStats возвращает состояние движка и процесса
func (rs *RestServer) handleStats(c *gin.Context) {
	var resp StatsResponse
	rs.session.View(func(w *world.World) {
		resp.Chunks = w.ChunkCount()
		w.ForEachChunk(func(ch *world.Chunk) {
			if ch.Dirty() {
				resp.DirtyChunks++
			}
		})
	})

	body := rs.session.Body()
	resp.Player = [3]float64(body.Position)
	resp.Flying = body.Flying
	resp.Health = rs.session.Health()
	resp.PendingMeshes = rs.session.PendingMeshes()
	resp.PendingInputs = rs.inputs.Len()
	resp.Handles = rs.session.Handles().Len()
	if rs.render != nil {
		st := rs.render.Stats()
		resp.Render = &st
	}
	resp.Process = rs.metrics.Snapshot()

	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Stats retrieved", Data: resp})
}

// rayLimit - наибольшая дальность луча: радиус прогрузки в блоках
func (rs *RestServer) rayLimit() float64 {
	var r int
	rs.session.View(func(w *world.World) { r = w.RenderDistance() })
	if r < 1 {
		r = 1
	}
	return float64((r + 1) * world.ChunkSize)
}

// queryInts читает целые параметры запроса. Пустое имя пропускается.
func queryInts(c *gin.Context, names ...string) (int, int, int, error) {
	var out [3]int
	for i, name := range names {
		if name == "" || i >= len(out) {
			continue
		}
		raw, ok := c.GetQuery(name)
		if !ok {
			return 0, 0, 0, fmt.Errorf("missing query parameter %q", name)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid %s: %q", name, raw)
		}
		out[i] = v
	}
	return out[0], out[1], out[2], nil
}

func chunkParams(c *gin.Context) (world.ChunkPos, bool) {
	cx, errX := strconv.Atoi(c.Param("cx"))
	cz, errZ := strconv.Atoi(c.Param("cz"))
	if errX != nil || errZ != nil {
		badRequest(c, "Invalid chunk coordinates")
		return world.ChunkPos{}, false
	}
	return world.ChunkPos{X: cx, Z: cz}, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, GenericResponse{Success: false, Message: msg})
}
