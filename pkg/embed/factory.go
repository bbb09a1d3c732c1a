package embed

// EmbedFactory creates embed builders
type EmbedFactory interface {
	CreateTabletopEmbedBuilder() TabletopEmbedBuilder
	CreateBasicEmbedBuilder() EmbedBuilder
}

// DefaultEmbedFactory implements EmbedFactory interface
type DefaultEmbedFactory struct{}

// NewEmbedFactory creates a new DefaultEmbedFactory instance
func NewEmbedFactory() EmbedFactory {
	return &DefaultEmbedFactory{}
}

// CreateTabletopEmbedBuilder creates a TabletopEmbedBuilder instance
func (f *DefaultEmbedFactory) CreateTabletopEmbedBuilder() TabletopEmbedBuilder {
	return NewTabletopEmbedBuilder()
}

// CreateBasicEmbedBuilder creates a basic EmbedBuilder instance
func (f *DefaultEmbedFactory) CreateBasicEmbedBuilder() EmbedBuilder {
	return NewTabletopEmbedBuilder() // TabletopEmbeds implements EmbedBuilder interface
}

// Global factory instance for convenience
var globalFactory EmbedFactory = NewEmbedFactory()

// CreateTabletopEmbeds creates a TabletopEmbedBuilder using the global factory
func CreateTabletopEmbeds() TabletopEmbedBuilder {
	return globalFactory.CreateTabletopEmbedBuilder()
}

// CreateBasicEmbeds creates a basic EmbedBuilder using the global factory
func CreateBasicEmbeds() EmbedBuilder {
	return globalFactory.CreateBasicEmbedBuilder()
}
