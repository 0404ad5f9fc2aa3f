package mem

import (
	"sort"
	"sync"

	"github.com/goserg/multielo/internal/domain"
	"github.com/goserg/multielo/internal/normalize"
)

// Cache keeps the latest computed leaderboard so the web and bot handlers do
// not replay the whole match history on every read.
type Cache struct {
	mu      sync.RWMutex
	valid   bool
	players map[string]domain.Player
}

func New() *Cache {
	return &Cache{
		players: make(map[string]domain.Player),
	}
}

func (c *Cache) Update(players []domain.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.players = make(map[string]domain.Player, len(players))
	for i := range players {
		name := normalize.Name(players[i].Name)
		c.players[name] = players[i]
	}
	c.valid = true
}

// Invalidate must be called after every write that can change ratings.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
}

func (c *Cache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.valid
}

func (c *Cache) GetPlayerByName(name string) (domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return domain.Player{}, false
	}
	player, ok := c.players[normalize.Name(name)]
	if !ok {
		return domain.Player{}, false
	}
	return player, true
}

func (c *Cache) GetRatings() ([]domain.Player, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid {
		return nil, false
	}
	players := make([]domain.Player, 0, len(c.players))
	for _, player := range c.players {
		players = append(players, player)
	}
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})
	return players, true
}
