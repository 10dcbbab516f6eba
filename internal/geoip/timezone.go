package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=timezone_mocks_test.go -package=geoip

const (
	TimezoneHeader = "X-Timezone"
	ipInfoCacheTTL = 24 * time.Hour
)

type ipInfoClient interface {
	GetIPInfo(ip net.IP) (*ipinfo.Core, error)
}

// Resolver works out the calendar day of the caller. The order is:
// the X-Timezone header, the ipinfo timezone of the client IP, UTC.
type Resolver struct {
	ipInfo      ipInfoClient
	redisClient *redis.Client
	NowFunc     func() time.Time
}

func NewResolver(ipInfo ipInfoClient, redisClient *redis.Client) *Resolver {
	return &Resolver{
		ipInfo:      ipInfo,
		redisClient: redisClient,
		NowFunc:     time.Now,
	}
}

// NewIPInfoClient returns the ipinfo client used in production.
func NewIPInfoClient(httpClient *http.Client, token string) *ipinfo.Client {
	return ipinfo.NewClient(httpClient, nil, token)
}

func (gr *Resolver) Today(r *http.Request) string {
	return pkg.Today(gr.NowFunc(), gr.Location(r.Context(), r))
}

func (gr *Resolver) Location(ctx context.Context, r *http.Request) *time.Location {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.location")
	defer span.End()

	if tz := r.Header.Get(TimezoneHeader); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			span.SetAttributes(attribute.String("tz.source", "header"))
			return loc
		}
		log.Debugf("ignoring invalid %s header: %s", TimezoneHeader, tz)
	}

	userIp, err := pkg.ReadUserIP(r)
	if err != nil || userIp == "localhost" || gr.ipInfo == nil {
		return time.UTC
	}
	span.SetAttributes(attribute.String("user.ip", userIp))

	tz, err := gr.ipTimezone(ctx, userIp)
	if err != nil {
		log.Errorf("resolve timezone for %s: %s", userIp, err)
		return time.UTC
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Errorf("load location %s for %s: %s", tz, userIp, err)
		return time.UTC
	}
	span.SetAttributes(attribute.String("tz.source", "ipinfo"))
	return loc
}

func (gr *Resolver) ipTimezone(ctx context.Context, userIp string) (string, error) {
	userIpKey := fmt.Sprintf("ip-info::%s", userIp)
	if gr.redisClient != nil {
		tz, err := gr.redisClient.Get(ctx, userIpKey).Result()
		switch {
		case err == nil && tz != "":
			log.Tracef("found timezone for [%s] in redis cache", userIp)
			return tz, nil
		case err != nil && !errors.Is(err, redis.Nil):
			log.Errorf("failed to find ip info from redis for [%s]: %s", userIpKey, err)
		}
	}

	info, err := gr.ipInfo.GetIPInfo(net.ParseIP(userIp))
	if err != nil {
		return "", fmt.Errorf("get ip info: %w", err)
	}
	if info == nil || info.Timezone == "" {
		return "", fmt.Errorf("no timezone known for %s", userIp)
	}

	if gr.redisClient != nil {
		if err := gr.redisClient.Set(ctx, userIpKey, info.Timezone, ipInfoCacheTTL).Err(); err != nil {
			log.Errorf("failed to cache ip info in redis for %s: %s", userIp, err)
		}
	}

	return info.Timezone, nil
}
