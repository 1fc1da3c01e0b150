package rates

import (
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
)

var mockExchangeRateResponse = map[string]apiRate{
	"USD": {Last: 12863.08},
	"EUR": {Last: 11444.58},
	"JPY": {Last: 1398311.17},
	"CNY": {Last: 88439.82},
}

var expectedRates = map[CurrencyCode]float64{
	CurrencyCode("USD"): 12863.08,
	CurrencyCode("EUR"): 11444.58,
	CurrencyCode("JPY"): 1398311.17,
	CurrencyCode("CNY"): 88439.82,
}

func TestExchangeRateProvider_GetRate(t *testing.T) {
	mockedHTTPClient := http.Client{}
	httpmock.ActivateNonDefault(&mockedHTTPClient)

	defer httpmock.DeactivateAndReset()

	resp := mockExchangeRateResponse
	httpmock.RegisterResponder(http.MethodGet, "https://ticker.taskbazaar.org/api",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		},
	)

	provider := NewExchangeRateProvider([]string{"https://ticker.taskbazaar.org/api"})
	api, ok := provider.providers[0].(*tickerAPI)
	if !ok {
		t.Fatal("Type assertion failure provider 0 is not tickerAPI")
	}
	api.client = &mockedHTTPClient

	rate, err := provider.GetRate("USD", true)
	if err != nil {
		t.Fatal(err)
	}

	if rate != 12863.08 {
		t.Errorf("Returned incorrect rate. Expected %f, got %f", 12863.08, rate)
	}

	rate, err = provider.GetRate("eur", false)
	if err != nil {
		t.Fatal(err)
	}

	if rate != 11444.58 {
		t.Errorf("Returned incorrect rate. Expected %f, got %f", 11444.58, rate)
	}

	if _, err := provider.GetRate("XYZ", false); err == nil {
		t.Error("Expected error for unknown currency, got nil")
	}
}

func TestExchangeRateProvider_GetAllRates(t *testing.T) {
	mockedHTTPClient := http.Client{}
	httpmock.ActivateNonDefault(&mockedHTTPClient)

	defer httpmock.DeactivateAndReset()

	resp := mockExchangeRateResponse
	httpmock.RegisterResponder(http.MethodGet, "https://ticker.taskbazaar.org/api",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		},
	)

	provider := NewExchangeRateProvider([]string{"https://ticker.taskbazaar.org/api"})
	api, ok := provider.providers[0].(*tickerAPI)
	if !ok {
		t.Fatal("Type assertion failure provider 0 is not tickerAPI")
	}
	api.client = &mockedHTTPClient

	allRates, err := provider.GetAllRates(true)
	if err != nil {
		t.Fatal(err)
	}

	for cc, expected := range expectedRates {
		rate, ok := allRates[cc]
		if !ok {
			t.Fatalf("Currency %s not in returned map", cc)
		}

		if rate != expected {
			t.Errorf("Rate %s incorrect. Expected %f, got %f", cc, expected, rate)
		}
	}
}

func TestExchangeRateProvider_ProviderFallback(t *testing.T) {
	mockedHTTPClient := http.Client{}
	httpmock.ActivateNonDefault(&mockedHTTPClient)

	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, "https://bad.taskbazaar.org/api",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewStringResponse(http.StatusInternalServerError, "not json"), nil
		},
	)
	resp := mockExchangeRateResponse
	httpmock.RegisterResponder(http.MethodGet, "https://ticker.taskbazaar.org/api",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		},
	)

	provider := NewExchangeRateProvider([]string{
		"https://bad.taskbazaar.org/api",
		"https://ticker.taskbazaar.org/api",
	})
	for _, p := range provider.providers {
		p.(*tickerAPI).client = &mockedHTTPClient
	}

	rate, err := provider.GetRate("USD", true)
	if err != nil {
		t.Fatal(err)
	}

	if rate != 12863.08 {
		t.Errorf("Returned incorrect rate. Expected %f, got %f", 12863.08, rate)
	}
}

func TestExchangeRateProvider_ConvertToFiat(t *testing.T) {
	mockedHTTPClient := http.Client{}
	httpmock.ActivateNonDefault(&mockedHTTPClient)

	defer httpmock.DeactivateAndReset()

	resp := mockExchangeRateResponse
	httpmock.RegisterResponder(http.MethodGet, "https://ticker.taskbazaar.org/api",
		func(req *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusOK, resp)
		},
	)

	provider := NewExchangeRateProvider([]string{"https://ticker.taskbazaar.org/api"})
	provider.providers[0].(*tickerAPI).client = &mockedHTTPClient

	val, err := provider.ConvertToFiat(50000000, "USD")
	if err != nil {
		t.Fatal(err)
	}

	if val != 6431.54 {
		t.Errorf("Returned incorrect value. Expected %f, got %f", 6431.54, val)
	}
}
