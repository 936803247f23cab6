package club

// ClubStore defines the interface for interacting with club data. Lookup
// methods return (nil, nil) when the entity does not exist so callers can
// distinguish a miss from a database failure.
type ClubStore interface {
	UpsertClub(club Club) error
	GetClub(clubID string) (*Club, error)
	UpsertCategory(category Category) error
	GetCategory(categoryID string) (*Category, error)
	UpsertPlayers(players []PlayerInfo) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	GetPlayers(playerIDs []string) ([]PlayerInfo, error)
	GetAllPlayers(clubID string) ([]PlayerInfo, error)
	AddPlayerToCategory(categoryID, playerID string) error
	IsCategoryMember(categoryID, playerID string) (bool, error)
	Clear()
}
