package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fittrack-session||"
	tokensSetKey     = "fittrack-sessions"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = fmt.Errorf("username already taken: %w", pkg.ErrConflict)
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) validate() error {
	username := strings.TrimSpace(c.Username)
	if len(username) < 3 || len(username) > 255 {
		return fmt.Errorf("username must be between 3 and 255 characters: %w", pkg.ErrValidation)
	}
	if len(c.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long: %w", pkg.ErrValidation)
	}
	return nil
}

type usersRepo interface {
	CreateUser(ctx context.Context, username, passwordHash string) (int, error)
	FindCredentials(ctx context.Context, username string) (userID int, passwordHash string, err error)
}

type equipmentAssigner interface {
	AssignAllEquipment(ctx context.Context, userID int) error
}

type Service struct {
	users       usersRepo
	equipment   equipmentAssigner
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
	NowFunc        func() time.Time
}

func NewAuthService(
	users usersRepo,
	equipment equipmentAssigner,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:          users,
		equipment:      equipment,
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
		NowFunc:        time.Now,
	}
}

// Register creates the user, gives it all equipment types and logs it in.
func (as *Service) Register(ctx context.Context, creds Credentials) (_ int, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := creds.validate(); err != nil {
		return 0, "", err
	}

	passwordHash, err := pkg.HashPassword(creds.Password)
	if err != nil {
		return 0, "", fmt.Errorf("hash password: %w", err)
	}

	userID, err := as.users.CreateUser(ctx, strings.TrimSpace(creds.Username), passwordHash)
	if err != nil {
		if pkg.IsUniqueViolationError(err) || errors.Is(err, pkg.ErrConflict) {
			return 0, "", ErrUsernameTaken
		}
		return 0, "", fmt.Errorf("create user: %w", err)
	}
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := as.equipment.AssignAllEquipment(ctx, userID); err != nil {
		// the user can still pick equipment in settings
		log.Errorf("register user %d, assign equipment: %s", userID, err)
	}

	token, err := as.newSession(ctx, userID)
	if err != nil {
		return 0, "", err
	}

	return userID, token, nil
}

func (as *Service) Login(ctx context.Context, creds Credentials) (_ int, _ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	userID, passwordHash, err := as.users.FindCredentials(ctx, strings.TrimSpace(creds.Username))
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return 0, "", ErrInvalidCredentials
		}
		return 0, "", fmt.Errorf("find credentials: %w", err)
	}

	if !pkg.CheckPasswordHash(creds.Password, passwordHash) {
		return 0, "", ErrInvalidCredentials
	}

	token, err := as.newSession(ctx, userID)
	if err != nil {
		return 0, "", err
	}

	return userID, token, nil
}

func (as *Service) newSession(ctx context.Context, userID int) (string, error) {
	token, err := as.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	sessionValue := fmt.Sprintf("%d|%d", userID, as.NowFunc().Unix())
	if err := as.redisClient.Set(ctx, sessionKey, sessionValue, as.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	// add token to list of sessions
	if err := as.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("add session token: %w", err)
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return false, err
	}

	// remove token from the list of sessions
	if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, err
	}

	return cmdDel.Val() > 0, nil
}

// UserIDForToken resolves a bearer token to the id of the logged user.
func (as *Service) UserIDForToken(ctx context.Context, token string) (int, error) {
	cmd := as.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrInvalidToken
		}
		return 0, err
	}

	userID, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return 0, err
	}
	if as.NowFunc().Sub(createdAt) > as.ttl {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		cmd := as.redisClient.Get(ctx, sessionKeyPrefix+token)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				// already expired in redis, only the set member is left
				toRemove = append(toRemove, token)
				continue
			}
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAt, err := parseSessionValue(cmd.Val())
		if err != nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			toRemove = append(toRemove, token)
			continue
		}

		if as.NowFunc().Sub(createdAt) > as.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("=> auth service, clean token %s: %s", token, err)
		}
	}
	log.Debugf("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}

func parseSessionValue(value string) (int, time.Time, error) {
	userIDStr, createdAtStr, found := strings.Cut(value, "|")
	if !found {
		return 0, time.Time{}, fmt.Errorf("malformed session value [%s]", value)
	}
	userID, err := strconv.Atoi(userIDStr)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse session created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
