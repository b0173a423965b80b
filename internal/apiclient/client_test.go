package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"fintrack/internal/tableview"
)

type ClientTestSuite struct {
	suite.Suite
	server   *httptest.Server
	client   *Client
	requests []recordedRequest
	handler  func(w http.ResponseWriter, r *http.Request)
}

type recordedRequest struct {
	method string
	path   string
	auth   string
	body   []byte
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.requests = nil
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.requests = append(s.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.RequestURI(),
			auth:   r.Header.Get("Authorization"),
			body:   body,
		})
		s.handler(w, r)
	}))
	s.client = NewClient(s.server.URL)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) respondJSON(status int, body string) {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func (s *ClientTestSuite) TestLogin_StoresTokenPair() {
	s.respondJSON(http.StatusOK,
		`{"access_token":"tok-123","refresh_token":"ref-123","token_type":"Bearer","expires_at":"2024-06-01T12:00:00Z"}`)

	err := s.client.Login(context.Background(), "alice@example.com", "secret")
	s.Require().NoError(err)

	s.True(s.client.Session().Authenticated())
	s.Equal("tok-123", s.client.Session().Token())
	s.Equal("ref-123", s.client.Session().RefreshToken())

	s.Require().Len(s.requests, 1)
	s.Equal(http.MethodPost, s.requests[0].method)
	s.Equal("/api/auth/login", s.requests[0].path)
	s.JSONEq(`{"email":"alice@example.com","password":"secret"}`, string(s.requests[0].body))
}

func (s *ClientTestSuite) TestLogin_InvalidCredentials() {
	s.respondJSON(http.StatusUnauthorized,
		`{"error":{"code":"AUTH_001","message":"Invalid email or password","trace_id":"t-1"}}`)

	err := s.client.Login(context.Background(), "alice@example.com", "wrong")
	s.Require().Error(err)

	apiErr, ok := err.(*APIError)
	s.Require().True(ok)
	s.Equal("AUTH_001", apiErr.Code)
	s.Equal("Invalid email or password", err.Error(), "message surfaces verbatim")
	s.True(apiErr.IsAuth())
	s.False(s.client.Session().Authenticated())
}

func (s *ClientTestSuite) TestRefresh_RotatesTokenPair() {
	s.Require().NoError(s.client.Session().SetTokens("tok-old", "ref-old"))
	s.respondJSON(http.StatusOK,
		`{"access_token":"tok-new","refresh_token":"ref-new","token_type":"Bearer","expires_at":"2024-06-01T13:00:00Z"}`)

	s.Require().NoError(s.client.Refresh(context.Background()))

	s.Equal("tok-new", s.client.Session().Token())
	s.Equal("ref-new", s.client.Session().RefreshToken())

	s.Require().Len(s.requests, 1)
	s.Equal(http.MethodPost, s.requests[0].method)
	s.Equal("/api/auth/refresh", s.requests[0].path)
	s.JSONEq(`{"refresh_token":"ref-old"}`, string(s.requests[0].body))
}

func (s *ClientTestSuite) TestRefresh_RequiresRefreshToken() {
	err := s.client.Refresh(context.Background())
	s.Require().Error(err)
	s.Empty(s.requests, "no request goes out without a refresh token")
}

func (s *ClientTestSuite) TestLogout_ClearsSessionEvenOnServerError() {
	s.Require().NoError(s.client.Session().SetToken("tok-123"))
	s.respondJSON(http.StatusInternalServerError,
		`{"error":{"code":"SYSTEM_001","message":"An unexpected error occurred. Please contact support with trace ID","trace_id":"t-2"}}`)

	err := s.client.Logout(context.Background())
	s.Require().Error(err)
	s.False(s.client.Session().Authenticated())
}

func (s *ClientTestSuite) TestAuthorizationHeaderCarriesSessionToken() {
	s.Require().NoError(s.client.Session().SetToken("tok-456"))
	s.respondJSON(http.StatusOK, `{"rowData":[],"rowCount":0}`)

	source := NewSource[EntryRow](s.client, "incomes")
	_, err := source.FetchPage(context.Background(), tableview.NewTableQuery(10).Request())
	s.Require().NoError(err)

	s.Require().Len(s.requests, 1)
	s.Equal("Bearer tok-456", s.requests[0].auth)
}

func (s *ClientTestSuite) TestFetchPage_SendsQueryAndDecodesPage() {
	s.respondJSON(http.StatusOK, `{
		"rowData":[
			{"id":1,"date":"2024-06-01","amount":"1200.00","note":"salary","item_id":"1","item_name":"Salary"},
			{"id":2,"date":"2024-06-02","amount":"300.00","note":"","item_id":"2","item_name":"Freelance"}
		],
		"rowCount":37
	}`)

	query := tableview.NewTableQuery(10)
	query.Window.GoTo(2)
	query.Filters.Set("note", "sal", tableview.FilterText, tableview.OpContains)
	query.Sort.RequestSort("date")

	source := NewSource[EntryRow](s.client, "incomes")
	page, err := source.FetchPage(context.Background(), query.Request())
	s.Require().NoError(err)

	s.Equal(int64(37), page.RowCount)
	s.Require().Len(page.RowData, 2)
	s.Equal("Salary", page.RowData[0].ItemName)

	s.Require().Len(s.requests, 1)
	s.Equal("/api/incomes/query", s.requests[0].path)
	s.JSONEq(`{
		"startRow":20,
		"endRow":30,
		"filterModel":{"note":{"filter":"sal","filterType":"text","type":"contains"}},
		"sortModel":[{"colId":"date","sort":"asc"}]
	}`, string(s.requests[0].body))
}

func (s *ClientTestSuite) TestStore_CreateUpdateDelete() {
	store := NewStore[EntryFields](s.client, "expenses")
	fields := EntryFields{Date: "2024-06-03", Amount: "45.00", Note: "dinner", ItemID: 3}

	s.respondJSON(http.StatusCreated, `{"id":9}`)
	s.Require().NoError(store.Create(context.Background(), fields))

	s.respondJSON(http.StatusOK, `{"id":9}`)
	s.Require().NoError(store.Update(context.Background(), 9, fields))

	s.respondJSON(http.StatusNoContent, ``)
	s.Require().NoError(store.Delete(context.Background(), 9))

	s.Require().Len(s.requests, 3)
	s.Equal(http.MethodPost, s.requests[0].method)
	s.Equal("/api/expenses", s.requests[0].path)
	s.Equal(http.MethodPut, s.requests[1].method)
	s.Equal("/api/expenses/9", s.requests[1].path)
	s.Equal(http.MethodDelete, s.requests[2].method)
	s.Equal("/api/expenses/9", s.requests[2].path)

	var sent EntryFields
	s.Require().NoError(json.Unmarshal(s.requests[0].body, &sent))
	s.Equal(fields, sent)
}

func (s *ClientTestSuite) TestStore_ValidationErrorSurfacesMessage() {
	s.respondJSON(http.StatusBadRequest,
		`{"error":{"code":"VALIDATION_007","message":"Amount must be a positive number","trace_id":"t-3"}}`)

	store := NewStore[EntryFields](s.client, "expenses")
	err := store.Create(context.Background(), EntryFields{Amount: "-1"})
	s.Require().Error(err)

	apiErr, ok := err.(*APIError)
	s.Require().True(ok)
	s.True(apiErr.IsValidation())
	s.Equal("Amount must be a positive number", err.Error())
}

func (s *ClientTestSuite) TestItemOptions() {
	s.respondJSON(http.StatusOK, `[{"id":1,"name":"Salary"},{"id":2,"name":"Freelance"}]`)

	options, err := s.client.ItemOptions(context.Background(), "income")
	s.Require().NoError(err)

	s.Equal([]tableview.Option{{ID: 1, Name: "Salary"}, {ID: 2, Name: "Freelance"}}, options)
	s.Equal("/api/items/options?kind=income", s.requests[0].path)
}

func (s *ClientTestSuite) TestReport() {
	s.respondJSON(http.StatusOK, `{
		"total_income":"3200.00",
		"total_expense":"1150.00",
		"balance":"2050.00",
		"monthly_totals":[{"month":"2024-06","income":"3200.00","expense":"1150.00"}]
	}`)

	report, err := s.client.Report(context.Background(), "", "")
	s.Require().NoError(err)

	s.Equal("2050.00", report.Balance)
	s.Require().Len(report.MonthlyTotals, 1)
	s.Equal("2024-06", report.MonthlyTotals[0].Month)
	s.Equal("/api/report/summary", s.requests[0].path)
}

func (s *ClientTestSuite) TestReport_DateRange() {
	s.respondJSON(http.StatusOK, `{
		"total_income":"1000.00",
		"total_expense":"400.00",
		"balance":"600.00",
		"monthly_totals":[]
	}`)

	_, err := s.client.Report(context.Background(), "2024-01-01", "2024-03-31")
	s.Require().NoError(err)

	s.Equal("/api/report/summary?from=2024-01-01&to=2024-03-31", s.requests[0].path)
}

func (s *ClientTestSuite) TestChart() {
	s.respondJSON(http.StatusOK, `[{"item_name":"Groceries","total":"420.00"}]`)

	points, err := s.client.Chart(context.Background(), "expense", "", "")
	s.Require().NoError(err)

	s.Require().Len(points, 1)
	s.Equal("Groceries", points[0].ItemName)
	s.Equal("/api/report/chart?kind=expense", s.requests[0].path)
}

func (s *ClientTestSuite) TestChart_DateRange() {
	s.respondJSON(http.StatusOK, `[]`)

	_, err := s.client.Chart(context.Background(), "expense", "2024-06-01", "2024-06-30")
	s.Require().NoError(err)

	s.Equal("/api/report/chart?from=2024-06-01&kind=expense&to=2024-06-30", s.requests[0].path)
}

func (s *ClientTestSuite) TestMalformedErrorBodyFallsBackToStatus() {
	s.respondJSON(http.StatusBadGateway, `upstream unavailable`)

	_, err := s.client.Report(context.Background(), "", "")
	s.Require().Error(err)

	apiErr, ok := err.(*APIError)
	s.Require().True(ok)
	s.Equal(http.StatusBadGateway, apiErr.Status)
	s.Equal("Request failed with status 502", apiErr.Message)
}

func (s *ClientTestSuite) TestNotFoundPredicate() {
	s.respondJSON(http.StatusNotFound,
		`{"error":{"code":"ENTRY_001","message":"Entry not found","trace_id":"t-4"}}`)

	store := NewStore[EntryFields](s.client, "incomes")
	err := store.Delete(context.Background(), 99)
	s.Require().Error(err)

	apiErr, ok := err.(*APIError)
	s.Require().True(ok)
	s.True(apiErr.IsNotFound())
	s.Equal("Entry not found", apiErr.Message)
}

func (s *ClientTestSuite) TestTransportErrorIsNotAPIError() {
	s.server.Close()

	_, err := s.client.Report(context.Background(), "", "")
	s.Require().Error(err)

	_, ok := err.(*APIError)
	s.False(ok, "network failures are wrapped, not converted to API errors")
}
