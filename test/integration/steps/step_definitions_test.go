package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zakat-manager/backend/config"
	"github.com/zakat-manager/backend/internal/domain/entity"
	"github.com/zakat-manager/backend/internal/infra/dependency"
	"github.com/zakat-manager/backend/internal/integration/persistence/model"
	"github.com/zakat-manager/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

const (
	ratesCacheKey    = "zakat:exchange_rates:USD"
	metalPriceAPIKey = "test-goldapi-key"
)

const (
	ratesPath       = "/v4/latest/USD"
	goldPricePath   = "/api/XAU/USD"
	silverPricePath = "/api/XAG/USD"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	redis       *redis.Client
	providers   *mock.ApiMock
	accessToken string
	users       map[string]uuid.UUID
	saved       map[string]string
}

type response struct {
	status int
	body   any
}

var (
	serverInit     sync.Once
	testDB         *mock.Db
	testRedis      *redis.Client
	testProviders  *mock.ApiMock
	testServerPort int
	portInit       sync.Once
	providersInit  sync.Once
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func initializeProviders() {
	providersInit.Do(func() {
		testProviders = mock.NewApiServer()
		testProviders.Start()
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()
	initializeProviders()

	test := &testContext{
		uri:       fmt.Sprintf("http://localhost:%d", testServerPort),
		client:    &http.Client{Timeout: 10 * time.Second},
		providers: testProviders,
		redis:     mock.NewRedis(),
		db: mock.NewDb("zakat_manager", map[string]any{
			"assets":             &model.AssetModel{},
			"zakat_calculations": &model.ZakatCalculationModel{},
			"metal_price_quotes": &model.MetalPriceQuoteModel{},
			"zakat_payments":     &model.ZakatPaymentModel{},
		}),
	}

	testDB = test.db
	testRedis = test.redis

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^I am authenticated with an expired token$`, test.iAmAuthenticatedWithAnExpiredToken)

	// Provider steps
	ctx.Given(`^the exchange rate provider returns the rates:$`, test.theExchangeRateProviderReturnsTheRates)
	ctx.Given(`^the exchange rate provider is unavailable$`, test.theExchangeRateProviderIsUnavailable)
	ctx.Given(`^the cached exchange rates were fetched (\d+) hours ago with EUR at "([^"]*)"$`, test.theCachedExchangeRatesWereFetchedHoursAgo)
	ctx.Given(`^the metal price provider quotes "([^"]*)" at "([^"]*)" per gram$`, test.theMetalPriceProviderQuotes)
	ctx.Given(`^the metal price provider is unavailable$`, test.theMetalPriceProviderIsUnavailable)

	// Data steps
	ctx.Given(`^"([^"]*)" has the saved calculations:$`, test.hasTheSavedCalculations)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Provider assertion steps
	ctx.Then(`^the exchange rate provider should have been called (\d+) times?$`, test.theExchangeRateProviderShouldHaveBeenCalled)

	ctx.Then(`^the metal price provider should have received the API key$`, test.theMetalPriceProviderShouldHaveReceivedTheAPIKey)
	ctx.Then(`^the exchange rates should be cached$`, test.theExchangeRatesShouldBeCached)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.users = make(map[string]uuid.UUID)
	t.saved = make(map[string]string)

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	if t.redis != nil {
		_ = mock.ClearRedis(t.redis)
	}

	t.providers.ClearResponses(http.MethodGet, "/")
	t.providers.SetResponse(-1, http.MethodGet, ratesPath, http.StatusOK, map[string]any{
		"base": "USD",
		"date": "2026-03-01",
		"rates": map[string]any{
			"USD": 1,
			"EUR": 0.9,
			"GBP": 0.8,
			"SAR": 3.75,
		},
	})
	t.providers.SetResponse(-1, http.MethodGet, goldPricePath, http.StatusOK, metalQuote("XAU", 70))
	t.providers.SetResponse(-1, http.MethodGet, silverPricePath, http.StatusOK, metalQuote("XAG", 0.9))
}

func metalQuote(symbol string, pricePerGram float64) map[string]any {
	return map[string]any{
		"metal":          symbol,
		"currency":       "USD",
		"timestamp":      time.Now().Unix(),
		"price_gram_24k": pricePerGram,
	}
}

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Rates.APIURL = testProviders.GetUrl() + ratesPath
	cfg.Rates.TTL = time.Hour
	cfg.Rates.Timeout = 2 * time.Second
	cfg.Rates.MaxRetries = 0
	cfg.MetalPrices.APIURL = testProviders.GetUrl()
	cfg.MetalPrices.APIKey = metalPriceAPIKey
	cfg.MetalPrices.Currency = "USD"
	cfg.Worker.Enabled = false
	cfg.Zakat.DefaultCurrency = "USD"
	cfg.Zakat.NisabStandard = "silver"
	cfg.Zakat.JewelryPolicy = "include"
	cfg.Zakat.EnforceHawl = false
	cfg.Zakat.PersonalUseExempt = []string{"property", "other"}
	return cfg
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			injector := dependency.NewInjector(testConfig(), testDB.DbConn, testRedis, dependency.Health{
				Database: func() bool { return testDB != nil && testDB.DbConn != nil },
				Cache:    func() bool { return testRedis.Ping(context.Background()).Err() == nil },
			})
			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) userID(alias string) uuid.UUID {
	if id, ok := t.users[alias]; ok {
		return id
	}
	id := uuid.New()
	t.users[alias] = id
	return id
}

func signAccessToken(userID uuid.UUID, email string, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": "access",
		"exp":        jwt.NewNumericDate(expiresAt),
		"iat":        jwt.NewNumericDate(now),
		"iss":        "zakat-manager-auth",
		"sub":        userID.String(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// iAmAuthenticatedAs switches the current user. The same alias maps to the same
// user for the rest of the scenario.
func (t *testContext) iAmAuthenticatedAs(alias string) error {
	token, err := signAccessToken(t.userID(alias), alias+"@example.com", time.Now().Add(15*time.Minute))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmAuthenticatedWithAnExpiredToken() error {
	token, err := signAccessToken(uuid.New(), "expired@example.com", time.Now().Add(-time.Minute))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theExchangeRateProviderReturnsTheRates(content *godog.DocString) error {
	var rates map[string]any
	if err := json.Unmarshal([]byte(content.Content), &rates); err != nil {
		return fmt.Errorf("invalid rates document: %w", err)
	}
	t.providers.SetResponse(-1, http.MethodGet, ratesPath, http.StatusOK, map[string]any{
		"base":  "USD",
		"rates": rates,
	})
	return nil
}

func (t *testContext) theExchangeRateProviderIsUnavailable() error {
	t.providers.SetResponse(-1, http.MethodGet, ratesPath, http.StatusServiceUnavailable, map[string]any{
		"error": "maintenance",
	})
	return nil
}

// theCachedExchangeRatesWereFetchedHoursAgo seeds the rate cache with an aged table.
func (t *testContext) theCachedExchangeRatesWereFetchedHoursAgo(hours int, eur string) error {
	doc, err := json.Marshal(map[string]any{
		"base":       "USD",
		"rates":      map[string]string{"USD": "1", "EUR": eur, "SAR": "3.75"},
		"fetched_at": time.Now().UTC().Add(-time.Duration(hours) * time.Hour),
	})
	if err != nil {
		return err
	}
	return t.redis.Set(context.Background(), ratesCacheKey, doc, 0).Err()
}

func (t *testContext) theMetalPriceProviderQuotes(metal, price string) error {
	value, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return fmt.Errorf("invalid price '%s': %w", price, err)
	}
	switch metal {
	case "gold":
		t.providers.SetResponse(-1, http.MethodGet, goldPricePath, http.StatusOK, metalQuote("XAU", value))
	case "silver":
		t.providers.SetResponse(-1, http.MethodGet, silverPricePath, http.StatusOK, metalQuote("XAG", value))
	default:
		return fmt.Errorf("unknown metal '%s'", metal)
	}
	return nil
}

func (t *testContext) theMetalPriceProviderIsUnavailable() error {
	for _, path := range []string{goldPricePath, silverPricePath} {
		t.providers.SetResponse(-1, http.MethodGet, path, http.StatusBadGateway, map[string]any{
			"error": "upstream unavailable",
		})
	}
	return nil
}

func (t *testContext) hasTheSavedCalculations(alias string, content *godog.DocString) error {
	var rows []struct {
		Date        time.Time       `json:"date"`
		Currency    string          `json:"currency"`
		TotalAssets decimal.Decimal `json:"total_assets"`
		ZakatAmount decimal.Decimal `json:"zakat_amount"`
		MeetsNisab  bool            `json:"meets_nisab"`
	}
	if err := json.Unmarshal([]byte(content.Content), &rows); err != nil {
		return err
	}

	for _, row := range rows {
		calc := &entity.ZakatCalculation{
			ID:                  uuid.New(),
			UserID:              t.userID(alias),
			Currency:            row.Currency,
			NisabStandard:       entity.NisabStandardSilver,
			TotalAssetsValue:    row.TotalAssets,
			EligibleAssetsValue: row.TotalAssets,
			LiabilitiesValue:    decimal.Zero,
			NetZakatableValue:   row.TotalAssets,
			NisabThresholdValue: decimal.RequireFromString("520.51"),
			MeetsNisab:          row.MeetsNisab,
			ZakatAmount:         row.ZakatAmount,
			CalculationDate:     row.Date,
			CreatedAt:           row.Date,
		}
		if err := t.db.DbConn.Create(model.ZakatCalculationFromEntity(calc)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with saved response fields and
// {{user:alias}} with the ID of a scenario user.
func (t *testContext) replacePlaceholders(content string) string {
	for name, value := range t.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	for alias, id := range t.users {
		content = strings.ReplaceAll(content, "{{user:"+alias+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if idStr, ok := responseBody["id"].(string); ok {
		t.saved["last_id"] = idStr
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, quantity int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != quantity {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, quantity, len(items))
	}
	return nil
}

func (t *testContext) theExchangeRateProviderShouldHaveBeenCalled(quantity int) error {
	count := t.providers.RequestCount(http.MethodGet, ratesPath)
	if count != quantity {
		return fmt.Errorf("expected %d exchange rate provider calls, got %d", quantity, count)
	}
	return nil
}

func (t *testContext) theMetalPriceProviderShouldHaveReceivedTheAPIKey() error {
	headers := t.providers.GetRequestHeaders(http.MethodGet, goldPricePath, 0)
	if headers == nil {
		return errors.New("metal price provider was not called")
	}
	if headers["X-Access-Token"] != metalPriceAPIKey {
		return fmt.Errorf("expected api key '%s', got '%s'", metalPriceAPIKey, headers["X-Access-Token"])
	}
	return nil
}

func (t *testContext) theExchangeRatesShouldBeCached() error {
	if !mock.RedisKeyExists(ratesCacheKey) {
		return fmt.Errorf("expected key '%s' in redis", ratesCacheKey)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if tableModel, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(tableModel).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if tableModel, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(tableModel).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
