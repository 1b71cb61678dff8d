package repositories

import (
	"gorm.io/gorm"
)

// Repositories contains all repository instances
type Repositories struct {
	User       UserRepository
	Trade      TradeRepository
	Option     OptionRepository
	Collection CollectionRepository
	Preference PreferenceRepository
}

// NewRepositories creates a new repository container with all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Trade:      NewTradeRepository(db),
		Option:     NewOptionRepository(db),
		Collection: NewCollectionRepository(db),
		Preference: NewPreferenceRepository(db),
	}
}
