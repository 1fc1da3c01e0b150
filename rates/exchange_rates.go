package rates

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcutil"
	"github.com/cpacia/proxyclient"
)

// CurrencyCode is a capitalized fiat currency ticker such as USD or EUR.
type CurrencyCode string

// String returns the string representation of the currency code.
func (cc CurrencyCode) String() string {
	return string(cc)
}

// ExchangeRateProvider provides fiat exchange rate data for the satoshi
// amounts tracked by the ledger. Rates are cached for ten minutes to
// avoid hammering the API servers.
type ExchangeRateProvider struct {
	cache       map[CurrencyCode]float64
	lastQueried time.Time
	mtx         sync.Mutex
	providers   []provider
}

// NewExchangeRateProvider returns a new ExchangeRateProvider. The http
// connection to the API servers will use a proxy if one is configured in
// the environment. The provided sources must conform to the
// BitcoinAverage API specification.
func NewExchangeRateProvider(sources []string) *ExchangeRateProvider {
	e := ExchangeRateProvider{
		cache: make(map[CurrencyCode]float64),
		mtx:   sync.Mutex{},
	}

	client := proxyclient.NewHttpClient()
	client.Timeout = time.Minute

	for _, src := range sources {
		e.providers = append(e.providers, &tickerAPI{src, client})
	}

	return &e
}

// GetRate returns the fiat price of one whole coin in the given currency.
func (e *ExchangeRateProvider) GetRate(to CurrencyCode, breakCache bool) (float64, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	to = CurrencyCode(strings.ToUpper(to.String()))

	if breakCache || len(e.cache) == 0 || e.lastQueried.Add(time.Minute*10).Before(time.Now()) {
		rates, err := e.fetchRatesFromProviders()
		if err != nil {
			return 0, err
		}
		e.cache = rates
		e.lastQueried = time.Now()
	}
	rate, ok := e.cache[to]
	if !ok {
		return 0, errors.New("rate not found")
	}
	return rate, nil
}

// GetAllRates returns the full rate map keyed by currency code.
func (e *ExchangeRateProvider) GetAllRates(breakCache bool) (map[CurrencyCode]float64, error) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if breakCache || len(e.cache) == 0 || e.lastQueried.Add(time.Minute*10).Before(time.Now()) {
		rates, err := e.fetchRatesFromProviders()
		if err != nil {
			return nil, err
		}
		e.cache = rates
		e.lastQueried = time.Now()
	}
	return e.cache, nil
}

// ConvertToFiat returns the fiat value of a satoshi amount in the given currency.
func (e *ExchangeRateProvider) ConvertToFiat(amount btcutil.Amount, to CurrencyCode) (float64, error) {
	rate, err := e.GetRate(to, false)
	if err != nil {
		return 0, err
	}
	return amount.ToBTC() * rate, nil
}

// fetchRatesFromProviders queries the exchange rate sources serially until it gets a response back.
func (e *ExchangeRateProvider) fetchRatesFromProviders() (map[CurrencyCode]float64, error) {
	for _, provider := range e.providers {
		rates, err := provider.fetchRates()
		if err == nil {
			return rates, nil
		}
	}
	return nil, errors.New("all exchange rate providers failed")
}

// provider is an interface to a specific exchange rate API.
type provider interface {
	fetchRates() (map[CurrencyCode]float64, error)
}

// tickerAPI is an implementation of the provider interface which connects to a
// BitcoinAverage style ticker endpoint.
type tickerAPI struct {
	url    string
	client *http.Client
}

type apiRate struct {
	Last float64 `json:"last"`
}

func (t *tickerAPI) fetchRates() (map[CurrencyCode]float64, error) {
	rates := make(map[string]apiRate)

	resp, err := t.client.Get(t.url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)

	if err := decoder.Decode(&rates); err != nil {
		return nil, err
	}

	out := make(map[CurrencyCode]float64)
	for cc, rate := range rates {
		out[CurrencyCode(strings.ToUpper(cc))] = rate.Last
	}

	return out, nil
}
