package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/carewatch/internal/client/api"
	"github.com/iudanet/carewatch/internal/client/auth"
	"github.com/iudanet/carewatch/internal/client/iocli"
	"github.com/iudanet/carewatch/internal/client/storage"
	pkgapi "github.com/iudanet/carewatch/pkg/api"
)

//go:generate moq -out service_mock.go . Sessions Readings

// Sessions управление сессией пользователя
type Sessions interface {
	Register(ctx context.Context, username, password, confirmPassword string) (string, error)
	Login(ctx context.Context, username, password string) (*storage.AuthData, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*storage.AuthData, error)
	AccessToken(ctx context.Context) (string, error)
}

// Readings запросы к измерениям на сервере
type Readings interface {
	AddReading(ctx context.Context, accessToken string, req pkgapi.AddReadingRequest) (*pkgapi.Reading, error)
	ListReadings(ctx context.Context, accessToken string, page, pageSize int) (*pkgapi.ReadingListResponse, error)
	DeleteReading(ctx context.Context, accessToken string, id int64) error
	MockReading(ctx context.Context, accessToken string) (*pkgapi.MockReading, error)
}

type Cli struct {
	io       iocli.IO
	sessions Sessions
	readings Readings
	now      func() time.Time
}

func New(io iocli.IO, sessions Sessions, readings Readings) *Cli {
	return &Cli{
		io:       io,
		sessions: sessions,
		readings: readings,
		now:      time.Now,
	}
}

// withToken выполняет запрос с действующим access token.
// 401 от сервера означает, что сессию нужно открыть заново.
func (c *Cli) withToken(ctx context.Context, fn func(token string) error) error {
	token, err := c.sessions.AccessToken(ctx)
	if err != nil {
		return err
	}

	err = fn(token)
	if api.IsUnauthorized(err) {
		return fmt.Errorf("%w: %v", auth.ErrSessionExpired, err)
	}
	return err
}
