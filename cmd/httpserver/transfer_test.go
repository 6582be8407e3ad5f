//go:build integration

package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-petr/rib-bank/internal/accountrepo"
	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/internal/integrationtest"
	"github.com/go-petr/rib-bank/internal/integrationtest/helpers"
	"github.com/go-petr/rib-bank/internal/middleware"
	"github.com/go-petr/rib-bank/pkg/tokenpkg"
)

func TestTransferAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	user1, customer1 := helpers.SeedCustomer(t, server.DB)
	user2, customer2 := helpers.SeedCustomer(t, server.DB)

	account1 := helpers.SeedAccount(t, server.DB, customer1.UserID, "5000")
	account2 := helpers.SeedAccount(t, server.DB, customer2.UserID, "2000")
	blocked := helpers.SeedAccount(t, server.DB, customer2.UserID, "1000")

	accountRepo := accountrepo.NewRepoPGS(server.DB)
	if _, err := accountRepo.SetStatus(context.Background(), blocked.RIB, domain.StatusBlocked); err != nil {
		t.Fatalf("accountRepo.SetStatus() returned error: %v", err)
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker() returned error: %v", err)
	}

	authType := middleware.AuthTypeBearer
	duration := server.Config.AccessTokenDuration

	type requestBody struct {
		SourceRIB      string `json:"source_rib"`
		DestinationRIB string `json:"destination_rib"`
		Amount         string `json:"amount"`
	}

	testCases := []struct {
		name           string
		requestBody    requestBody
		setupAuth      func(t *testing.T, r *http.Request) error
		wantStatusCode int
		wantError      string
		wantMessage    string
	}{
		{
			name: "OK",
			requestBody: requestBody{
				SourceRIB:      account1.RIB,
				DestinationRIB: account2.RIB,
				Amount:         "1500",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusOK,
			wantMessage:    "transfer of 1500.00 MAD from " + account1.RIB + " to " + account2.RIB + " completed successfully",
		},
		{
			name: "RequiredSourceRIB",
			requestBody: requestBody{
				DestinationRIB: account2.RIB,
				Amount:         "100",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "SourceRIB field is required",
		},
		{
			name: "MalformedDestinationRIB",
			requestBody: requestBody{
				SourceRIB:      account1.RIB,
				DestinationRIB: "MA00",
				Amount:         "100",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "DestinationRIB field must be a valid RIB (2 letters followed by 22 digits)",
		},
		{
			name: "SelfTransfer",
			requestBody: requestBody{
				SourceRIB:      account1.RIB,
				DestinationRIB: account1.RIB,
				Amount:         "100",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrSelfTransfer.Error(),
		},
		{
			name: "InsufficientFunds",
			requestBody: requestBody{
				SourceRIB:      account2.RIB,
				DestinationRIB: account1.RIB,
				Amount:         "1000000",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user2.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInsufficientFunds.Error(),
		},
		{
			name: "BlockedDestination",
			requestBody: requestBody{
				SourceRIB:      account1.RIB,
				DestinationRIB: blocked.RIB,
				Amount:         "100",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrAccountBlocked.Error(),
		},
		{
			name: "UnknownSource",
			requestBody: requestBody{
				SourceRIB:      "MA9999999999999999999999",
				DestinationRIB: account2.RIB,
				Amount:         "100",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, authType, user1.Username, duration)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name: "NoAuthorization",
			requestBody: requestBody{
				SourceRIB:      account1.RIB,
				DestinationRIB: account2.RIB,
				Amount:         "100",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      middleware.ErrAuthHeaderNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err = tc.setupAuth(t, req); err != nil {
				t.Fatalf("tc.setupAuth(t, req) returned error: %v", err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v, body %v", got, tc.wantStatusCode, w.Body.String())
			}

			var res struct {
				Data struct {
					Transfer struct {
						Success       bool   `json:"success"`
						Message       string `json:"message"`
						DebitEntryID  int64  `json:"debit_entry_id"`
						CreditEntryID int64  `json:"credit_entry_id"`
					} `json:"transfer"`
				} `json:"data"`
				Error string `json:"error"`
			}

			if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if !strings.Contains(res.Error, tc.wantError) {
					t.Errorf("res.Error=%q, want containing %q", res.Error, tc.wantError)
				}

				return
			}

			if !res.Data.Transfer.Success {
				t.Error("res.Data.Transfer.Success=false, want true")
			}

			if res.Data.Transfer.Message != tc.wantMessage {
				t.Errorf("res.Data.Transfer.Message=%q, want %q", res.Data.Transfer.Message, tc.wantMessage)
			}

			if res.Data.Transfer.DebitEntryID == 0 || res.Data.Transfer.CreditEntryID == 0 {
				t.Errorf("entry ids: got %v and %v, want non-zero",
					res.Data.Transfer.DebitEntryID, res.Data.Transfer.CreditEntryID)
			}
		})
	}
}
