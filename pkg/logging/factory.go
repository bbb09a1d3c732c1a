package logging

import "sync"

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	loggers map[string]Logger
	mu      sync.RWMutex
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory() LoggerFactory {
	return &DefaultLoggerFactory{
		loggers: make(map[string]Logger),
	}
}

// CreateLogger creates a basic logger for the specified component
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewZapLogger(component)
	f.loggers[component] = logger
	return logger
}

// CreateCommandLogger creates a logger for Discord command operations
func (f *DefaultLoggerFactory) CreateCommandLogger(commandName string) Logger {
	return f.CreateLogger("commands").WithCommand(commandName)
}

// CreateGuildLogger creates a logger scoped to one guild
func (f *DefaultLoggerFactory) CreateGuildLogger(guildID string) Logger {
	return f.CreateLogger("guild").WithContext(map[string]interface{}{
		"guild_id": guildID,
	})
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	loggers    map[string]Logger
	mu         sync.RWMutex
	repository LogRepository
}

// NewDatabaseLoggerFactory creates a logger factory with database persistence
func NewDatabaseLoggerFactory(repository LogRepository) LoggerFactory {
	return &DatabaseLoggerFactory{
		loggers:    make(map[string]Logger),
		repository: repository,
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	logger := NewDatabaseLogger(NewZapLogger(component), component, f.repository)
	f.loggers[component] = logger
	return logger
}

// CreateCommandLogger creates a logger for Discord command operations
func (f *DatabaseLoggerFactory) CreateCommandLogger(commandName string) Logger {
	return f.CreateLogger("commands").WithCommand(commandName)
}

// CreateGuildLogger creates a logger scoped to one guild
func (f *DatabaseLoggerFactory) CreateGuildLogger(guildID string) Logger {
	return f.CreateLogger("guild").WithContext(map[string]interface{}{
		"guild_id": guildID,
	})
}

// GlobalLoggerFactory provides a singleton logger factory instance
var (
	globalFactory LoggerFactory
	factoryOnce   sync.Once
)

// GetGlobalLoggerFactory returns the global logger factory instance
func GetGlobalLoggerFactory() LoggerFactory {
	factoryOnce.Do(func() {
		if globalFactory == nil {
			globalFactory = NewLoggerFactory()
		}
	})
	return globalFactory
}

// SetGlobalLoggerFactory sets the global logger factory (useful for dependency injection)
func SetGlobalLoggerFactory(factory LoggerFactory) {
	globalFactory = factory
}
