package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"billed/internal/dto"
	"billed/internal/models"
	"billed/internal/repository"
	"billed/internal/service"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/store/mocks"
	"billed/internal/view"
	"billed/pkg/auth"
	"billed/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type billAPI struct {
	app    *fiber.App
	store  *mocks.MockStore
	bills  *mocks.MockBillCollection
	token  string
	scoped []string
}

func newBillAPI(t *testing.T) *billAPI {
	ctrl := gomock.NewController(t)
	jwtManager := auth.NewJWTManager("secret", time.Hour, time.Hour)

	api := &billAPI{
		store: mocks.NewMockStore(ctrl),
		bills: mocks.NewMockBillCollection(ctrl),
	}
	api.store.EXPECT().Bills().Return(api.bills).AnyTimes()

	token, err := jwtManager.GenerateToken("u1", string(models.UserTypeEmployee), "employee@test.tld")
	require.NoError(t, err)
	api.token = token

	h := NewBillHandler(func(user *session.User) store.Store {
		api.scoped = append(api.scoped, user.Email)
		return api.store
	}, zap.NewNop())

	api.app = fiber.New()
	bills := api.app.Group("/api/v1/bills", middleware.AuthMiddleware(jwtManager, zap.NewNop()))
	bills.Get("", h.ListBills)
	bills.Post("", h.CreateBill)
	bills.Get("/proof", h.ShowProof)
	bills.Put("/:id", h.UpdateBill)
	return api
}

func (a *billAPI) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp, err := a.app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func newBillForm(t *testing.T, fields map[string]string, fileName, mimeType string) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
		h.Set("Content-Type", mimeType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("proof"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bills", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func completeForm() map[string]string {
	return map[string]string{
		"type":       "Transports",
		"name":       "Vol Paris Londres",
		"amount":     "348",
		"date":       "2022-04-04",
		"vat":        "70",
		"pct":        "20",
		"commentary": "séminaire",
	}
}

func ptr[T any](v T) *T { return &v }

func TestListBillsEndpoint(t *testing.T) {
	api := newBillAPI(t)
	api.bills.EXPECT().List(gomock.Any()).Return([]models.BillDocument{
		{ID: "1", Email: "employee@test.tld", Name: ptr("old"), Date: ptr("2001-01-01"), Status: "refused"},
		{ID: "2", Email: "employee@test.tld", Date: ptr("2024-01-01"), Status: "pending"},
		{ID: "3", Email: "employee@test.tld", Name: ptr("new"), Date: ptr("2004-04-04"), Status: "accepted"},
	}, nil)

	resp, body := api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bills []dto.BillResponse
	require.NoError(t, json.Unmarshal(body, &bills))
	require.Len(t, bills, 2)
	assert.Equal(t, "3", bills[0].ID)
	assert.Equal(t, "4 Avr. 04", bills[0].Date)
	assert.Equal(t, "2004-04-04", bills[0].RawDate)
	assert.Equal(t, "Accepté", bills[0].Status)
	assert.Equal(t, "Refusé", bills[1].Status)
	assert.Equal(t, []string{"employee@test.tld"}, api.scoped)
}

func TestListBillsEndpointStoreError(t *testing.T) {
	api := newBillAPI(t)
	api.bills.EXPECT().List(gomock.Any()).Return(nil, fmt.Errorf("connection refused"))

	resp, _ := api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCreateBillEndpoint(t *testing.T) {
	api := newBillAPI(t)
	api.store.EXPECT().
		Upload(gomock.Any(), gomock.Any(), "ticket.png", "employee@test.tld").
		Return(&models.UploadResult{Key: "k1", FileURL: "/uploads/k1.png", FileName: "ticket.png"}, nil)
	api.bills.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bill *models.Bill) (*models.Bill, error) {
			assert.Equal(t, "k1", bill.ID)
			assert.Equal(t, "/uploads/k1.png", bill.FileURL)
			assert.Equal(t, "employee@test.tld", bill.Email)
			assert.Equal(t, models.BillStatusPending, bill.Status)
			assert.Equal(t, 20, bill.Pct)
			return bill, nil
		})

	resp, body := api.do(t, newBillForm(t, completeForm(), "ticket.png", "image/png"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, view.RouteBills, out.Redirect)
	assert.Empty(t, out.Alerts)
	require.NotNil(t, out.Bill)
	assert.Equal(t, "k1", out.Bill.ID)
	assert.Equal(t, "348", out.Bill.Amount.String())
}

func TestCreateBillEndpointRejectsProofType(t *testing.T) {
	api := newBillAPI(t)

	resp, body := api.do(t, newBillForm(t, completeForm(), "ticket.pdf", "application/pdf"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, []string{service.MsgInvalidFileType}, out.Alerts)
	assert.True(t, out.ClearFileInput)
	assert.Empty(t, out.Redirect)
	assert.Nil(t, out.Bill)
}

func TestCreateBillEndpointIncompleteForm(t *testing.T) {
	api := newBillAPI(t)
	form := completeForm()
	delete(form, "amount")

	resp, body := api.do(t, newBillForm(t, form, "", ""))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.SubmissionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, []string{service.MsgMissingFields}, out.Alerts)
	assert.False(t, out.ClearFileInput)
}

func TestCreateBillEndpointConflict(t *testing.T) {
	api := newBillAPI(t)
	api.bills.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("bill k1: %w", repository.ErrBillExists))

	resp, _ := api.do(t, newBillForm(t, completeForm(), "", ""))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateBillEndpoint(t *testing.T) {
	testCases := []struct {
		name           string
		updateErr      error
		expectedStatus int
	}{
		{name: "updated", expectedStatus: http.StatusOK},
		{name: "not_found", updateErr: fmt.Errorf("bill k1: %w", repository.ErrBillNotFound), expectedStatus: http.StatusNotFound},
		{name: "store_failure", updateErr: fmt.Errorf("connection reset"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newBillAPI(t)
			api.bills.EXPECT().
				Update(gomock.Any(), "k1", gomock.Any()).
				DoAndReturn(func(_ context.Context, id string, bill *models.Bill) (*models.Bill, error) {
					assert.Equal(t, "employee@test.tld", bill.Email)
					assert.Equal(t, models.BillStatusPending, bill.Status)
					return bill, tc.updateErr
				})

			req := httptest.NewRequest(http.MethodPut, "/api/v1/bills/k1",
				strings.NewReader(`{"email":"someone@else.tld","name":"Vol","amount":"348","date":"2022-04-04","pct":20}`))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := api.do(t, req)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
		})
	}
}

func TestShowProofEndpoint(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "stored_proof", query: "?url=/uploads/k1.png", expected: "/uploads/k1.png"},
		{name: "no_proof", query: "", expected: service.PlaceholderProofURL},
		{name: "null_proof", query: "?url=null", expected: service.PlaceholderProofURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newBillAPI(t)
			resp, body := api.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/bills/proof"+tc.query, nil))
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var out dto.ProofResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tc.expected, out.ImageURL)
		})
	}
}

func TestBillEndpointsRequireToken(t *testing.T) {
	api := newBillAPI(t)
	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/bills", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, api.scoped)
}
