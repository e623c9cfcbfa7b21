// Package category keeps the set of image categories known to the gallery.
package category

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"boutiqueCMS/internal/models"
)

var (
	ErrExists    = errors.New("категория уже существует")
	ErrNotFound  = errors.New("категория не найдена")
	ErrProtected = errors.New("предопределённую категорию нельзя удалить")
	ErrInvalidID = errors.New("недопустимый идентификатор категории")
)

// slugPattern allows lower-case words joined by single hyphens or underscores.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

const (
	DefaultID   = models.DefaultCategory
	DefaultIcon = "folder"

	// subSeparator joins a registered parent and a free-form child, e.g. "mariage_ceremonie".
	subSeparator = "_"
)

func predefined() []models.Category {
	return []models.Category{
		{ID: "fleurs", Name: "Fleurs", Description: "Fleurs individuelles et compositions florales", Icon: "flower"},
		{ID: "bouquets", Name: "Bouquets", Description: "Bouquets pour toutes occasions", Icon: "bouquet"},
		{ID: "evenements", Name: "Événements", Description: "Décorations florales pour événements", Icon: "event"},
		{ID: "mariage", Name: "Mariage", Description: "Compositions florales pour mariages", Icon: "ring"},
		{ID: "deuil", Name: "Deuil", Description: "Compositions florales pour obsèques", Icon: "wreath"},
		{ID: DefaultID, Name: "Général", Description: "Images diverses", Icon: "image", IsDefault: true},
	}
}

// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	items map[string]*models.Category
}

func NewRegistry() *Registry {
	r := &Registry{items: make(map[string]*models.Category)}

	for _, c := range predefined() {
		c.Predefined = true
		r.order = append(r.order, c.ID)
		r.items[c.ID] = &c
	}

	return r
}

// List returns copies in registration order, predefined categories first.
func (r *Registry) List() []*models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Category, 0, len(r.order))
	for _, id := range r.order {
		c := *r.items[id]
		out = append(out, &c)
	}

	return out
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func (r *Registry) Get(id string) (*models.Category, bool) {
	id = normalizeID(id)

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	if !ok {
		return nil, false
	}

	cp := *c
	return &cp, true
}

func (r *Registry) IsPredefined(id string) bool {
	id = normalizeID(id)

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[id]
	return ok && c.Predefined
}

// Add registers a user category. The id is lower-cased and must be a slug; an empty icon becomes DefaultIcon.
func (r *Registry) Add(c models.Category) (*models.Category, error) {
	c.ID = normalizeID(c.ID)
	if !slugPattern.MatchString(c.ID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, c.ID)
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	c.IsDefault, c.Predefined = false, false

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[c.ID]; ok {
		return nil, fmt.Errorf("категория %s: %w", c.ID, ErrExists)
	}

	r.order = append(r.order, c.ID)
	r.items[c.ID] = &c

	cp := c
	return &cp, nil
}

// Update merges the non-nil fields of u into the category.
func (r *Registry) Update(id string, u models.CategoryUpdate) (*models.Category, error) {
	id = normalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("категория %s: %w", id, ErrNotFound)
	}

	if u.Name != "" {
		c.Name = u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Icon != nil {
		c.Icon = *u.Icon
	}

	cp := *c
	return &cp, nil
}

func (r *Registry) Delete(id string) error {
	id = normalizeID(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[id]
	if !ok {
		return fmt.Errorf("категория %s: %w", id, ErrNotFound)
	}
	if c.Predefined {
		return fmt.Errorf("категория %s: %w", id, ErrProtected)
	}

	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

func (r *Registry) Default() *models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if c := r.items[id]; c.IsDefault {
			cp := *c
			return &cp
		}
	}

	cp := *r.items[r.order[0]]
	return &cp
}

// Validate returns id when it is registered, or when it is "<parent>_<child>" with a registered parent.
// Anything else resolves to the default category.
func (r *Registry) Validate(id string) string {
	id = normalizeID(id)
	if id == "" {
		return r.Default().ID
	}

	r.mu.RLock()
	_, ok := r.items[id]
	if !ok {
		if parent, child, found := strings.Cut(id, subSeparator); found && child != "" {
			_, ok = r.items[parent]
		}
	}
	r.mu.RUnlock()

	if ok {
		return id
	}
	return r.Default().ID
}

// Load seeds user categories read from storage. Ids already present are skipped.
func (r *Registry) Load(categories []*models.Category) int {
	loaded := 0
	for _, c := range categories {
		if c == nil {
			continue
		}
		if _, err := r.Add(*c); err == nil {
			loaded++
		}
	}
	return loaded
}
