package sim

import (
	"errors"
	"sync"
)

// MaxQueuedSteps ограничивает число шагов, ожидающих в InputQueue
const MaxQueuedSteps = 1200

// ErrInputQueueFull возвращается, если шаги не помещаются в очередь
var ErrInputQueueFull = errors.New("input queue is full")

// InputQueue - очередь управления для цикла симуляции. Внешний источник
// (отладочный API) кладёт ввод, цикл забирает по одному на шаг.
type InputQueue struct {
	mu      sync.Mutex
	pending []Input
}

// NewInputQueue создаёт пустую очередь
func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

// Push добавляет ввод на steps шагов. Разовые действия (ToggleFly, Place)
// попадают только в первый шаг.
func (q *InputQueue) Push(in Input, steps int) error {
	if steps < 1 {
		steps = 1
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending)+steps > MaxQueuedSteps {
		return ErrInputQueueFull
	}

	q.pending = append(q.pending, in)
	held := in
	held.ToggleFly = false
	held.Place = 0
	for i := 1; i < steps; i++ {
		q.pending = append(q.pending, held)
	}
	return nil
}

// Next возвращает ввод для следующего шага или пустой ввод
func (q *InputQueue) Next() Input {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return Input{}
	}
	in := q.pending[0]
	q.pending[0] = Input{}
	q.pending = q.pending[1:]
	return in
}

// Len возвращает число ожидающих шагов
func (q *InputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Clear отбрасывает ожидающий ввод
func (q *InputQueue) Clear() {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()
}
