package logging

import (
	"fmt"
	"sort"
	"sync"
)

// LoggerManager управляет логгерами отдельных компонентов
type LoggerManager struct {
	mu      sync.RWMutex
	opts    Options
	loggers map[string]*Logger
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

// NewLoggerManager создаёт менеджер, выдающий логгеры с общими настройками
func NewLoggerManager(opts Options) *LoggerManager {
	return &LoggerManager{
		opts:    opts,
		loggers: make(map[string]*Logger),
	}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() {
		globalManager = NewLoggerManager(defaultOptions())
	})
	return globalManager
}

// Configure меняет настройки для новых логгеров. Уже созданные логгеры
// получают новые уровни, но продолжают писать туда же, куда писали.
func (lm *LoggerManager) Configure(opts Options) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	lm.opts = opts
	for _, logger := range lm.loggers {
		logger.SetLevels(opts.ConsoleLevel, opts.FileLevel)
	}
}

// GetLogger возвращает логгер для компонента, создавая его при необходимости
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.RLock()
	if logger, exists := lm.loggers[component]; exists {
		lm.mu.RUnlock()
		return logger, nil
	}
	lm.mu.RUnlock()

	lm.mu.Lock()
	defer lm.mu.Unlock()

	// Проверяем еще раз: логгер мог появиться, пока ждали блокировку
	if logger, exists := lm.loggers[component]; exists {
		return logger, nil
	}

	logger, err := NewLoggerWithOptions(component, lm.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger for %s: %w", component, err)
	}

	lm.loggers[component] = logger
	return logger, nil
}

// MustGetLogger возвращает логгер или консольный fallback при ошибке
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	logger, err := lm.GetLogger(component)
	if err != nil {
		return mustConsoleLogger(component)
	}
	return logger
}

// CloseAll закрывает все логгеры
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var lastErr error
	for component, logger := range lm.loggers {
		if err := logger.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close logger for %s: %w", component, err)
		}
	}

	lm.loggers = make(map[string]*Logger)
	return lastErr
}

// ListComponents возвращает отсортированный список компонентов
func (lm *LoggerManager) ListComponents() []string {
	lm.mu.RLock()
	defer lm.mu.RUnlock()

	components := make([]string, 0, len(lm.loggers))
	for component := range lm.loggers {
		components = append(components, component)
	}
	sort.Strings(components)
	return components
}

// SetLogLevel устанавливает уровень логирования для компонента
func (lm *LoggerManager) SetLogLevel(component string, consoleLevel, fileLevel LogLevel) error {
	lm.mu.RLock()
	logger, exists := lm.loggers[component]
	lm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("logger for component %s not found", component)
	}

	logger.SetLevels(consoleLevel, fileLevel)
	return nil
}

// Удобные функции для получения логгеров
func GetComponentLogger(component string) *Logger {
	return GetLoggerManager().MustGetLogger(component)
}

func GetWorldLogger() *Logger {
	return GetComponentLogger("world")
}

func GetMeshLogger() *Logger {
	return GetComponentLogger("mesh")
}

func GetServerLogger() *Logger {
	return GetComponentLogger("server")
}

func GetSimLogger() *Logger {
	return GetComponentLogger("sim")
}
