package barcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultLookupTimeout = 10 * time.Second
	productCacheExpire   = 60 * 60 // seconds
)

// Client looks products up in Open Food Facts.
type Client struct {
	apiURL     string // https://world.openfoodfacts.org
	httpClient *http.Client
	cache      *freecache.Cache
	Timeout    time.Duration
}

func NewClient(apiURL string, httpClient *http.Client) *Client {
	megabyte := 1024 * 1024
	return &Client{
		apiURL:     apiURL,
		httpClient: httpClient,
		cache:      freecache.NewCache(10 * megabyte),
		Timeout:    DefaultLookupTimeout,
	}
}

func (c *Client) Lookup(ctx context.Context, barcode string) (product *Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "barcode.lookup")
	defer span.End()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	span.SetAttributes(attribute.String("barcode", barcode))

	if !ValidBarcode(barcode) {
		return nil, ErrInvalidBarcode
	}

	cacheKey := []byte("product::" + barcode)
	if productBytes, err := c.cache.Get(cacheKey); err == nil {
		product = &Product{}
		if err = json.Unmarshal(productBytes, product); err == nil {
			span.SetAttributes(attribute.Bool("from-cache", true))
			return product, nil
		}
		log.Errorf("failed to unmarshal cached product %s: %s", barcode, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/v2/product/%s.json", c.apiURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrLookupTimeout
		}
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrLookupTimeout
		}
		return nil, fmt.Errorf("read product response bytes: %w", err)
	}

	// OFF answers unknown products with 404 and status 0
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts responded with status %d", resp.StatusCode)
	}

	var offResp offResponse
	if err := json.Unmarshal(respBytes, &offResp); err != nil {
		return nil, fmt.Errorf("unmarshal product response: %w", err)
	}
	if offResp.Status == 0 {
		return nil, ErrProductNotFound
	}

	product = offResp.toProduct(barcode)
	if productBytes, err := json.Marshal(product); err == nil {
		if err := c.cache.Set(cacheKey, productBytes, productCacheExpire); err != nil {
			log.Errorf("failed to cache product %s: %s", barcode, err)
		}
	}

	return product, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
