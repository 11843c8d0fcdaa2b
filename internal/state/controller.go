package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/shelf/internal/library"
)

// ErrMissingCredentials is returned by Login when username or password is blank.
var ErrMissingCredentials = errors.New("username and password are required")

// TokenStore persists the session token.
type TokenStore interface {
	Read() (string, error)
	Write(token string) error
}

// Controller owns the session token and the author/book collections. All
// mutations go through SetToken, Refresh, Login and Logout.
type Controller struct {
	api    library.Fetcher
	tokens TokenStore
	log    *zap.Logger

	mu       sync.RWMutex
	snapshot Snapshot
	inflight int
}

// NewController wires the controller to the API and the token store. A nil
// logger disables logging.
func NewController(api library.Fetcher, tokens TokenStore, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		api:    api,
		tokens: tokens,
		log:    log.Named("state"),
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := c.snapshot.clone()
	snap.Loading = c.inflight > 0
	return snap
}

// IsAuthenticated reports whether a non-empty token is held.
func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Token != ""
}

// Start loads the persisted token and runs the initial refresh. The refresh
// happens even without a token, so anonymous data loads at startup.
func (c *Controller) Start(ctx context.Context) {
	var token string
	if c.tokens != nil {
		stored, err := c.tokens.Read()
		if err != nil {
			c.log.Warn("read session failed; starting unauthenticated", zap.Error(err))
		} else {
			token = stored
		}
	}
	c.log.Info("session loaded", zap.Bool("authenticated", token != ""))

	c.mu.Lock()
	c.snapshot.Token = token
	epoch, current := c.beginRefreshLocked()
	c.mu.Unlock()

	c.runRefresh(ctx, epoch, current)
}

// SetToken persists token, makes it current and refreshes both collections,
// returning once both fetches resolved. A persist failure is returned after
// the refresh; the in-memory token changes regardless.
func (c *Controller) SetToken(ctx context.Context, token string) error {
	var persistErr error
	if c.tokens != nil {
		if err := c.tokens.Write(token); err != nil {
			c.log.Error("persist session failed", zap.Error(err))
			persistErr = fmt.Errorf("persist token: %w", err)
		}
	}

	c.mu.Lock()
	c.snapshot.Token = token
	epoch, current := c.beginRefreshLocked()
	c.mu.Unlock()

	c.runRefresh(ctx, epoch, current)
	return persistErr
}

// Refresh refetches authors and books with the current token.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	epoch, token := c.beginRefreshLocked()
	c.mu.Unlock()

	c.runRefresh(ctx, epoch, token)
}

// Login exchanges credentials for a token and installs it. On failure the
// state is left untouched and no fetch is issued.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return ErrMissingCredentials
	}
	token, err := c.api.Authenticate(ctx, username, password)
	if err != nil {
		c.log.Warn("login failed", zap.String("username", username), zap.Error(err))
		return err
	}
	c.log.Info("login succeeded", zap.String("username", username))
	return c.SetToken(ctx, token)
}

// Logout clears the token and reloads anonymously.
func (c *Controller) Logout(ctx context.Context) error {
	c.log.Info("logout")
	return c.SetToken(ctx, "")
}

// beginRefreshLocked starts a new epoch. Results from older epochs are
// discarded when they arrive. c.mu must be held.
func (c *Controller) beginRefreshLocked() (uint64, string) {
	c.snapshot.Epoch++
	c.inflight++
	return c.snapshot.Epoch, c.snapshot.Token
}

func (c *Controller) runRefresh(ctx context.Context, epoch uint64, token string) {
	defer func() {
		c.mu.Lock()
		c.inflight--
		c.mu.Unlock()
	}()

	// Neither goroutine returns an error: a failed collection must not
	// cancel the other one.
	var g errgroup.Group
	g.Go(func() error {
		authors, err := c.api.ListAuthors(ctx, token)
		c.applyAuthors(epoch, authors, err)
		return nil
	})
	g.Go(func() error {
		books, err := c.api.ListBooks(ctx, token)
		c.applyBooks(epoch, books, err)
		return nil
	})
	_ = g.Wait()
}

func (c *Controller) applyAuthors(epoch uint64, authors []library.Author, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.snapshot.Epoch {
		c.log.Debug("discarding stale authors", zap.Uint64("epoch", epoch), zap.Uint64("current", c.snapshot.Epoch))
		return
	}
	if err != nil {
		c.log.Warn("fetch failed", zap.String("resource", string(library.ResourceAuthors)), zap.Uint64("epoch", epoch), zap.Error(err))
		c.snapshot.AuthorsErr = err
		return
	}
	if authors == nil {
		authors = []library.Author{}
	}
	c.snapshot.Authors = cloneAuthors(authors)
	c.snapshot.AuthorsErr = nil
	c.snapshot.LastUpdated = time.Now()
}

func (c *Controller) applyBooks(epoch uint64, books []library.Book, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if epoch != c.snapshot.Epoch {
		c.log.Debug("discarding stale books", zap.Uint64("epoch", epoch), zap.Uint64("current", c.snapshot.Epoch))
		return
	}
	if err != nil {
		c.log.Warn("fetch failed", zap.String("resource", string(library.ResourceBooks)), zap.Uint64("epoch", epoch), zap.Error(err))
		c.snapshot.BooksErr = err
		return
	}
	if books == nil {
		books = []library.Book{}
	}
	c.snapshot.Books = cloneBooks(books)
	c.snapshot.BooksErr = nil
	c.snapshot.LastUpdated = time.Now()
}
