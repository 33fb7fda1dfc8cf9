package notionclient

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/snadboy/sbnotion/src/notion"
)

const (
	DEFAULT_CACHE_TTL = 5 * time.Minute
)

var ErrObjectNotFound = errors.New("no object found for given identifier")

// Workspace caches the pages and databases visible to the integration,
// indexed both by id and by title, so repeated id-or-title lookups do
// not hit the API. Entries expire together after the TTL.
type Workspace struct {
	client NotionClient
	ttl    time.Duration

	mutex           sync.RWMutex
	pagesById       map[string]notion.Page
	pagesByName     map[string]notion.Page
	databasesById   map[string]notion.Database
	databasesByName map[string]notion.Database
	schemaHashes    map[string]string
	lastRefresh     time.Time
}

// GetWorkspace returns a Workspace backed by the given client.
func GetWorkspace(client NotionClient, ttl time.Duration) *Workspace {
	if ttl <= 0 {
		ttl = DEFAULT_CACHE_TTL
	}

	return &Workspace{
		client:          client,
		ttl:             ttl,
		pagesById:       make(map[string]notion.Page),
		pagesByName:     make(map[string]notion.Page),
		databasesById:   make(map[string]notion.Database),
		databasesByName: make(map[string]notion.Database),
		schemaHashes:    make(map[string]string),
	}
}

func (w *Workspace) expired() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return time.Since(w.lastRefresh) > w.ttl
}

// Refresh refetches all pages and databases from the workspace.
func (w *Workspace) Refresh(ctx context.Context) error {
	log := zerolog.Ctx(ctx)
	log.Debug().Msg("Refreshing workspace cache")

	pagesById := make(map[string]notion.Page)
	pagesByName := make(map[string]notion.Page)
	cursor := notion.Cursor("")
	for {
		pages, nextCursor, err := w.client.GetAllPages(ctx, cursor)
		if err != nil {
			return errors.Wrap(err, "failed to fetch pages")
		}

		for _, page := range pages {
			pagesById[page.ID.String()] = page
			if title := page.PlainTitle(); title != "" {
				pagesByName[title] = page
			}
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	databasesById := make(map[string]notion.Database)
	databasesByName := make(map[string]notion.Database)
	cursor = notion.Cursor("")
	for {
		databases, nextCursor, err := w.client.GetAllDatabases(ctx, cursor)
		if err != nil {
			return errors.Wrap(err, "failed to fetch databases")
		}

		for _, database := range databases {
			databasesById[database.ID.String()] = database
			if title := database.PlainTitle(); title != "" {
				databasesByName[title] = database
			}
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.pagesById = pagesById
	w.pagesByName = pagesByName
	w.databasesById = databasesById
	w.databasesByName = databasesByName
	w.lastRefresh = time.Now()
	return nil
}

func (w *Workspace) lookupPage(identifier string) (notion.Page, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	if page, found := w.pagesById[identifier]; found {
		return page, true
	}
	page, found := w.pagesByName[identifier]
	return page, found
}

func (w *Workspace) lookupDatabase(identifier string) (notion.Database,
	bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	if database, found := w.databasesById[identifier]; found {
		return database, true
	}
	database, found := w.databasesByName[identifier]
	return database, found
}

// GetPage finds a page by id or title. A stale cache is refreshed
// first; a miss triggers one more refresh before giving up.
func (w *Workspace) GetPage(ctx context.Context, identifier string) (*notion.Page, error) {
	if w.expired() {
		if err := w.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	if page, found := w.lookupPage(identifier); found {
		return &page, nil
	}

	if err := w.Refresh(ctx); err != nil {
		return nil, err
	}

	if page, found := w.lookupPage(identifier); found {
		return &page, nil
	}

	return nil, ErrObjectNotFound
}

// GetDatabase finds a database by id or title. The schema is always
// refetched so callers observe current properties.
func (w *Workspace) GetDatabase(ctx context.Context, identifier string) (*notion.Database, error) {
	if w.expired() {
		if err := w.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	database, found := w.lookupDatabase(identifier)
	if !found {
		if err := w.Refresh(ctx); err != nil {
			return nil, err
		}

		database, found = w.lookupDatabase(identifier)
		if !found {
			return nil, ErrObjectNotFound
		}
	}

	return w.client.GetDatabaseByID(ctx, DatabaseID(database.ID))
}

// GetAllDatabases lists every cached database.
func (w *Workspace) GetAllDatabases(ctx context.Context) ([]notion.Database, error) {
	if w.expired() {
		if err := w.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	w.mutex.RLock()
	defer w.mutex.RUnlock()

	databases := make([]notion.Database, 0, len(w.databasesById))
	for _, database := range w.databasesById {
		databases = append(databases, database)
	}
	return databases, nil
}

// SchemaChanged records the given schema hash and reports whether it
// differs from the previously recorded one.
func (w *Workspace) SchemaChanged(databaseId string, hash string) bool {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	previous, found := w.schemaHashes[databaseId]
	w.schemaHashes[databaseId] = hash
	return !found || previous != hash
}
