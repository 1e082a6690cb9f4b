package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/notehive/payout-ledger-api/internal/domain"
	"github.com/notehive/payout-ledger-api/internal/domain/vo"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withLocals simulates the JWT middleware having authenticated the caller.
func withLocals(userID, role string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		if role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

func performJSONRequest(app *fiber.App, method, path string, body []byte) (*http.Response, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if len(body) > 0 {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	if err != nil {
		return nil, nil
	}

	defer resp.Body.Close()
	rawBody, _ := io.ReadAll(resp.Body)
	parsed := map[string]interface{}{}
	_ = json.Unmarshal(rawBody, &parsed)

	return resp, parsed
}

func sampleView(status string) vo.WithdrawalView {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return vo.WithdrawalView{
		ID:                "wd-1",
		UserID:            "user-1",
		AccountHolderName: "Jordan Seller",
		BankName:          "First Bank",
		IBAN:              "DE89370400440532013000",
		Amount:            decimal.NewFromInt(500),
		Status:            status,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

type fakeWithdrawalService struct {
	requestFn  func(ctx context.Context, userID, holder, bank, iban string, amount decimal.Decimal) (vo.WithdrawalMutation, error)
	acceptFn   func(ctx context.Context, recordID string) (vo.WithdrawalMutation, error)
	rejectFn   func(ctx context.Context, recordID string) (vo.WithdrawalMutation, error)
	completeFn func(ctx context.Context, recordID, routingNumber string, routingDate time.Time) (vo.WithdrawalMutation, error)
	addNoteFn  func(ctx context.Context, recordID, note string) (vo.WithdrawalMutation, error)
	deleteFn   func(ctx context.Context, recordID, requesterID string) (vo.WithdrawalMutation, error)
	getFn      func(ctx context.Context, recordID, callerID string, isAdmin bool) (vo.WithdrawalView, error)
	listFn     func(ctx context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error)
	balanceFn  func(ctx context.Context, userID string) (vo.BalanceInquiry, error)
}

func (f *fakeWithdrawalService) RequestWithdrawal(ctx context.Context, userID, holder, bank, iban string, amount decimal.Decimal) (vo.WithdrawalMutation, error) {
	return f.requestFn(ctx, userID, holder, bank, iban, amount)
}

func (f *fakeWithdrawalService) AdminAccept(ctx context.Context, recordID string) (vo.WithdrawalMutation, error) {
	return f.acceptFn(ctx, recordID)
}

func (f *fakeWithdrawalService) AdminReject(ctx context.Context, recordID string) (vo.WithdrawalMutation, error) {
	return f.rejectFn(ctx, recordID)
}

func (f *fakeWithdrawalService) AdminComplete(ctx context.Context, recordID, routingNumber string, routingDate time.Time) (vo.WithdrawalMutation, error) {
	return f.completeFn(ctx, recordID, routingNumber, routingDate)
}

func (f *fakeWithdrawalService) AdminAddNote(ctx context.Context, recordID, note string) (vo.WithdrawalMutation, error) {
	return f.addNoteFn(ctx, recordID, note)
}

func (f *fakeWithdrawalService) RequesterDelete(ctx context.Context, recordID, requesterID string) (vo.WithdrawalMutation, error) {
	return f.deleteFn(ctx, recordID, requesterID)
}

func (f *fakeWithdrawalService) GetWithdrawal(ctx context.Context, recordID, callerID string, isAdmin bool) (vo.WithdrawalView, error) {
	return f.getFn(ctx, recordID, callerID, isAdmin)
}

func (f *fakeWithdrawalService) ListWithdrawals(ctx context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error) {
	return f.listFn(ctx, filter, callerID, isAdmin)
}

func (f *fakeWithdrawalService) GetBalance(ctx context.Context, userID string) (vo.BalanceInquiry, error) {
	return f.balanceFn(ctx, userID)
}

type WithdrawalRequestHandlerSuite struct {
	suite.Suite

	service *fakeWithdrawalService
	app     *fiber.App
}

func (s *WithdrawalRequestHandlerSuite) SetupTest() {
	s.service = &fakeWithdrawalService{}
	s.app = fiber.New()

	authenticated := s.app.Group("", withLocals("user-1", "seller"))
	NewWithdrawalRequestHandler(s.service, newTestLogger()).Register(authenticated)
}

func (s *WithdrawalRequestHandlerSuite) TestHandle_TableDriven() {
	validBody := []byte(`{"account_holder_name":"Jordan Seller","bank_name":"First Bank","iban":"DE89370400440532013000","amount":"500"}`)

	tests := []struct {
		name      string
		body      []byte
		serviceFn func(ctx context.Context, userID, holder, bank, iban string, amount decimal.Decimal) (vo.WithdrawalMutation, error)
		status    int
		errorText string
	}{
		{
			name:      "invalid body",
			body:      []byte(`{"amount":`),
			status:    fiber.StatusBadRequest,
			errorText: "invalid request body",
		},
		{
			name:      "missing payout details",
			body:      []byte(`{"account_holder_name":"  ","bank_name":"First Bank","iban":"DE89","amount":"500"}`),
			status:    fiber.StatusBadRequest,
			errorText: "account_holder_name, bank_name and iban are required",
		},
		{
			name: "missing payout details from service",
			body: validBody,
			serviceFn: func(context.Context, string, string, string, string, decimal.Decimal) (vo.WithdrawalMutation, error) {
				return vo.WithdrawalMutation{}, vo.ErrMissingPayoutDetails
			},
			status:    fiber.StatusBadRequest,
			errorText: "account_holder_name, bank_name and iban are required",
		},
		{
			name: "invalid amount",
			body: validBody,
			serviceFn: func(context.Context, string, string, string, string, decimal.Decimal) (vo.WithdrawalMutation, error) {
				return vo.WithdrawalMutation{}, vo.ErrInvalidAmount
			},
			status:    fiber.StatusBadRequest,
			errorText: "amount must be greater than 0",
		},
		{
			name: "below minimum",
			body: validBody,
			serviceFn: func(context.Context, string, string, string, string, decimal.Decimal) (vo.WithdrawalMutation, error) {
				return vo.WithdrawalMutation{}, vo.ErrBelowMinimum
			},
			status:    fiber.StatusBadRequest,
			errorText: "amount is below the minimum withdrawal",
		},
		{
			name: "insufficient balance",
			body: validBody,
			serviceFn: func(context.Context, string, string, string, string, decimal.Decimal) (vo.WithdrawalMutation, error) {
				return vo.WithdrawalMutation{}, vo.ErrInsufficientBalance
			},
			status:    fiber.StatusConflict,
			errorText: "insufficient balance",
		},
		{
			name: "quota exhausted",
			body: validBody,
			serviceFn: func(context.Context, string, string, string, string, decimal.Decimal) (vo.WithdrawalMutation, error) {
				return vo.WithdrawalMutation{}, vo.ErrQuotaExhausted
			},
			status:    fiber.StatusTooManyRequests,
			errorText: "monthly withdrawal quota exhausted",
		},
		{
			name: "unexpected error",
			body: validBody,
			serviceFn: func(context.Context, string, string, string, string, decimal.Decimal) (vo.WithdrawalMutation, error) {
				return vo.WithdrawalMutation{}, errors.New("unreachable database")
			},
			status:    fiber.StatusInternalServerError,
			errorText: "internal server error",
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.service.requestFn = tc.serviceFn

			resp, payload := performJSONRequest(s.app, http.MethodPost, "/withdrawals", tc.body)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
			assert.Equal(s.T(), tc.errorText, payload["error"])
		})
	}
}

func (s *WithdrawalRequestHandlerSuite) TestHandle_Created() {
	s.service.requestFn = func(_ context.Context, userID, holder, bank, iban string, amount decimal.Decimal) (vo.WithdrawalMutation, error) {
		assert.Equal(s.T(), "user-1", userID)
		assert.Equal(s.T(), "Jordan Seller", holder)
		assert.True(s.T(), amount.Equal(decimal.NewFromInt(500)))
		return vo.WithdrawalMutation{Message: "withdrawal request submitted", Withdrawal: sampleView("pending")}, nil
	}

	body := []byte(`{"account_holder_name":"Jordan Seller","bank_name":"First Bank","iban":"DE89370400440532013000","amount":"500"}`)
	resp, payload := performJSONRequest(s.app, http.MethodPost, "/withdrawals", body)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusCreated, resp.StatusCode)
	assert.Equal(s.T(), "withdrawal request submitted", payload["message"])
}

func (s *WithdrawalRequestHandlerSuite) TestHandle_Unauthenticated() {
	app := fiber.New()
	NewWithdrawalRequestHandler(s.service, newTestLogger()).Register(app)

	resp, _ := performJSONRequest(app, http.MethodPost, "/withdrawals", []byte(`{}`))
	require.NotNil(s.T(), resp)
	assert.Equal(s.T(), fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWithdrawalRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalRequestHandlerSuite))
}

type WithdrawalQueryHandlerSuite struct {
	suite.Suite

	service *fakeWithdrawalService
	app     *fiber.App
}

func (s *WithdrawalQueryHandlerSuite) SetupTest() {
	s.service = &fakeWithdrawalService{}
	s.app = fiber.New()

	authenticated := s.app.Group("", withLocals("user-1", "seller"))
	NewWithdrawalQueryHandler(s.service, newTestLogger()).Register(authenticated)
}

func (s *WithdrawalQueryHandlerSuite) TestHandleList_ParsesFilter() {
	var gotFilter domain.WithdrawalFilter
	var gotAdmin bool
	s.service.listFn = func(_ context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error) {
		gotFilter = filter
		gotAdmin = isAdmin
		assert.Equal(s.T(), "user-1", callerID)
		return vo.WithdrawalList{Withdrawals: []vo.WithdrawalView{sampleView("pending")}, Total: 1, Limit: 5}, nil
	}

	resp, payload := performJSONRequest(s.app, http.MethodGet, "/withdrawals?status=pending&limit=5&offset=10", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.False(s.T(), gotAdmin)
	require.NotNil(s.T(), gotFilter.Status)
	assert.Equal(s.T(), domain.WithdrawalPending, *gotFilter.Status)
	assert.Equal(s.T(), 5, gotFilter.Limit)
	assert.Equal(s.T(), 10, gotFilter.Offset)
	assert.Equal(s.T(), float64(1), payload["total"])
}

func (s *WithdrawalQueryHandlerSuite) TestHandleList_UnknownStatus() {
	resp, payload := performJSONRequest(s.app, http.MethodGet, "/withdrawals?status=cancelled", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(s.T(), "unknown status filter", payload["error"])
}

func (s *WithdrawalQueryHandlerSuite) TestHandleGet() {
	s.service.getFn = func(_ context.Context, recordID, callerID string, isAdmin bool) (vo.WithdrawalView, error) {
		assert.Equal(s.T(), "wd-1", recordID)
		assert.False(s.T(), isAdmin)
		return sampleView("pending"), nil
	}

	resp, payload := performJSONRequest(s.app, http.MethodGet, "/withdrawals/wd-1", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "wd-1", payload["id"])
}

func (s *WithdrawalQueryHandlerSuite) TestHandleGet_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: vo.ErrRecordNotFound, status: fiber.StatusNotFound},
		{name: "foreign record", err: vo.ErrForbidden, status: fiber.StatusForbidden},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.service.getFn = func(context.Context, string, string, bool) (vo.WithdrawalView, error) {
				return vo.WithdrawalView{}, tc.err
			}

			resp, _ := performJSONRequest(s.app, http.MethodGet, "/withdrawals/wd-1", nil)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
		})
	}
}

func (s *WithdrawalQueryHandlerSuite) TestHandleBalance() {
	s.service.balanceFn = func(_ context.Context, userID string) (vo.BalanceInquiry, error) {
		assert.Equal(s.T(), "user-1", userID)
		return vo.BalanceInquiry{
			UserID:          userID,
			Balance:         decimal.RequireFromString("245.50"),
			WithdrawalTimes: 2,
			Currency:        "USD",
		}, nil
	}

	resp, payload := performJSONRequest(s.app, http.MethodGet, "/balance", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "245.5", payload["balance"])
	assert.Equal(s.T(), float64(2), payload["withdrawal_times"])
	assert.Equal(s.T(), "USD", payload["currency"])
}

func TestWithdrawalQueryHandlerSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalQueryHandlerSuite))
}

type WithdrawalDeleteHandlerSuite struct {
	suite.Suite

	service *fakeWithdrawalService
	app     *fiber.App
}

func (s *WithdrawalDeleteHandlerSuite) SetupTest() {
	s.service = &fakeWithdrawalService{}
	s.app = fiber.New()

	authenticated := s.app.Group("", withLocals("user-1", "seller"))
	NewWithdrawalDeleteHandler(s.service, newTestLogger()).Register(authenticated)
}

func (s *WithdrawalDeleteHandlerSuite) TestHandle_TableDriven() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "success", err: nil, status: fiber.StatusOK},
		{name: "not the owner", err: vo.ErrForbidden, status: fiber.StatusForbidden},
		{name: "terminal record", err: vo.ErrInvalidTransition, status: fiber.StatusConflict},
		{name: "lost race with admin", err: vo.ErrConflict, status: fiber.StatusConflict},
		{name: "missing record", err: vo.ErrRecordNotFound, status: fiber.StatusNotFound},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.service.deleteFn = func(_ context.Context, recordID, requesterID string) (vo.WithdrawalMutation, error) {
				assert.Equal(s.T(), "wd-1", recordID)
				assert.Equal(s.T(), "user-1", requesterID)
				if tc.err != nil {
					return vo.WithdrawalMutation{}, tc.err
				}
				return vo.WithdrawalMutation{Message: "withdrawal request deleted"}, nil
			}

			resp, _ := performJSONRequest(s.app, http.MethodDelete, "/withdrawals/wd-1", nil)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
		})
	}
}

func TestWithdrawalDeleteHandlerSuite(t *testing.T) {
	suite.Run(t, new(WithdrawalDeleteHandlerSuite))
}

type AdminWithdrawalHandlerSuite struct {
	suite.Suite

	service *fakeWithdrawalService
	app     *fiber.App
}

func (s *AdminWithdrawalHandlerSuite) SetupTest() {
	s.service = &fakeWithdrawalService{}
	s.app = fiber.New()

	admin := s.app.Group("/admin", withLocals("admin-1", "admin"))
	NewAdminWithdrawalHandler(s.service, newTestLogger()).Register(admin)
}

func (s *AdminWithdrawalHandlerSuite) TestHandleAccept() {
	s.service.acceptFn = func(_ context.Context, recordID string) (vo.WithdrawalMutation, error) {
		assert.Equal(s.T(), "wd-1", recordID)
		return vo.WithdrawalMutation{Message: "withdrawal accepted", Withdrawal: sampleView("accepted")}, nil
	}

	resp, payload := performJSONRequest(s.app, http.MethodPost, "/admin/withdrawals/wd-1/accept", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "withdrawal accepted", payload["message"])
}

func (s *AdminWithdrawalHandlerSuite) TestHandleAccept_Conflict() {
	s.service.acceptFn = func(context.Context, string) (vo.WithdrawalMutation, error) {
		return vo.WithdrawalMutation{}, vo.ErrConflict
	}

	resp, payload := performJSONRequest(s.app, http.MethodPost, "/admin/withdrawals/wd-1/accept", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusConflict, resp.StatusCode)
	assert.Equal(s.T(), "the record was updated concurrently, retry", payload["error"])
}

func (s *AdminWithdrawalHandlerSuite) TestHandleReject() {
	s.service.rejectFn = func(_ context.Context, recordID string) (vo.WithdrawalMutation, error) {
		return vo.WithdrawalMutation{Message: "withdrawal rejected", Withdrawal: sampleView("rejected")}, nil
	}

	resp, _ := performJSONRequest(s.app, http.MethodPost, "/admin/withdrawals/wd-1/reject", nil)
	require.NotNil(s.T(), resp)
	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
}

func (s *AdminWithdrawalHandlerSuite) TestHandleComplete() {
	var gotDate time.Time
	s.service.completeFn = func(_ context.Context, recordID, routingNumber string, routingDate time.Time) (vo.WithdrawalMutation, error) {
		assert.Equal(s.T(), "wd-1", recordID)
		assert.Equal(s.T(), "RTN-77", routingNumber)
		gotDate = routingDate
		return vo.WithdrawalMutation{Message: "withdrawal completed", Withdrawal: sampleView("completed")}, nil
	}

	body := []byte(`{"routing_number":"RTN-77","routing_date":"2026-03-05"}`)
	resp, _ := performJSONRequest(s.app, http.MethodPost, "/admin/withdrawals/wd-1/complete", body)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), gotDate)
}

func (s *AdminWithdrawalHandlerSuite) TestHandleComplete_BadDate() {
	body := []byte(`{"routing_number":"RTN-77","routing_date":"05/03/2026"}`)
	resp, payload := performJSONRequest(s.app, http.MethodPost, "/admin/withdrawals/wd-1/complete", body)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(s.T(), "routing_date must be formatted as YYYY-MM-DD", payload["error"])
}

func (s *AdminWithdrawalHandlerSuite) TestHandleComplete_MissingRouting() {
	s.service.completeFn = func(context.Context, string, string, time.Time) (vo.WithdrawalMutation, error) {
		return vo.WithdrawalMutation{}, vo.ErrMissingRoutingInfo
	}

	resp, payload := performJSONRequest(s.app, http.MethodPost, "/admin/withdrawals/wd-1/complete", []byte(`{}`))
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(s.T(), "routing_number and routing_date are required", payload["error"])
}

func (s *AdminWithdrawalHandlerSuite) TestHandleAddNote() {
	s.service.addNoteFn = func(_ context.Context, recordID, note string) (vo.WithdrawalMutation, error) {
		assert.Equal(s.T(), "duplicate of wd-0", note)
		return vo.WithdrawalMutation{Message: "note saved"}, nil
	}

	body := []byte(`{"note":"duplicate of wd-0"}`)
	resp, payload := performJSONRequest(s.app, http.MethodPut, "/admin/withdrawals/wd-1/notes", body)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), "note saved", payload["message"])
}

func (s *AdminWithdrawalHandlerSuite) TestHandleList_AdminSeesAllUsers() {
	var gotAdmin bool
	var gotFilter domain.WithdrawalFilter
	s.service.listFn = func(_ context.Context, filter domain.WithdrawalFilter, callerID string, isAdmin bool) (vo.WithdrawalList, error) {
		gotAdmin = isAdmin
		gotFilter = filter
		return vo.WithdrawalList{}, nil
	}

	resp, _ := performJSONRequest(s.app, http.MethodGet, "/admin/withdrawals?user_id=user-9", nil)
	require.NotNil(s.T(), resp)

	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	assert.True(s.T(), gotAdmin)
	assert.Equal(s.T(), "user-9", gotFilter.UserID)
}

func TestAdminWithdrawalHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminWithdrawalHandlerSuite))
}

type AuthLoginHandlerSuite struct {
	suite.Suite

	loginFn func(ctx context.Context, email, password string) (vo.AuthLogin, error)
	app     *fiber.App
}

type loginServiceFunc func(ctx context.Context, email, password string) (vo.AuthLogin, error)

func (f loginServiceFunc) Login(ctx context.Context, email, password string) (vo.AuthLogin, error) {
	return f(ctx, email, password)
}

func (s *AuthLoginHandlerSuite) SetupTest() {
	s.loginFn = nil
	s.app = fiber.New()

	handler := NewAuthLoginHandler(loginServiceFunc(func(ctx context.Context, email, password string) (vo.AuthLogin, error) {
		return s.loginFn(ctx, email, password)
	}), newTestLogger())
	handler.Register(s.app)
}

func (s *AuthLoginHandlerSuite) TestHandle_TableDriven() {
	tests := []struct {
		name      string
		body      []byte
		loginFn   func(ctx context.Context, email, password string) (vo.AuthLogin, error)
		status    int
		assertion func(map[string]interface{})
	}{
		{
			name:   "invalid body",
			body:   []byte(`{"email":`),
			status: fiber.StatusBadRequest,
		},
		{
			name:   "missing credentials",
			body:   []byte(`{"email":"","password":""}`),
			status: fiber.StatusBadRequest,
		},
		{
			name: "wrong password",
			body: []byte(`{"email":"user@example.com","password":"nope"}`),
			loginFn: func(context.Context, string, string) (vo.AuthLogin, error) {
				return vo.AuthLogin{}, vo.ErrInvalidCredentials
			},
			status: fiber.StatusUnauthorized,
		},
		{
			name: "service failure",
			body: []byte(`{"email":"user@example.com","password":"secret"}`),
			loginFn: func(context.Context, string, string) (vo.AuthLogin, error) {
				return vo.AuthLogin{}, errors.New("db down")
			},
			status: fiber.StatusInternalServerError,
		},
		{
			name: "success",
			body: []byte(`{"email":"user@example.com","password":"secret"}`),
			loginFn: func(context.Context, string, string) (vo.AuthLogin, error) {
				return vo.AuthLogin{AccessToken: "signed-token", TokenType: "Bearer"}, nil
			},
			status: fiber.StatusOK,
			assertion: func(payload map[string]interface{}) {
				assert.Equal(s.T(), "signed-token", payload["access_token"])
				assert.Equal(s.T(), "Bearer", payload["token_type"])
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.loginFn = tc.loginFn

			resp, payload := performJSONRequest(s.app, http.MethodPost, "/auth/login", tc.body)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
			if tc.assertion != nil {
				tc.assertion(payload)
			}
		})
	}
}

func TestAuthLoginHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthLoginHandlerSuite))
}
