package userdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/configpkg"
	"github.com/go-petr/rib-bank/pkg/errorspkg"
	"github.com/go-petr/rib-bank/pkg/randompkg"
	"github.com/go-petr/rib-bank/pkg/tokenpkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T, service Service) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	config := configpkg.Config{AccessTokenDuration: time.Minute}

	handler := NewHandler(service, tokenMaker, config)

	server := gin.Default()
	server.POST("/users", handler.Create)
	server.POST("/users/login", handler.Login)

	return server
}

func TestCreateUserAPI(t *testing.T) {
	username := randompkg.Owner()
	password := randompkg.String(10)

	validBody := gin.H{
		"username":        username,
		"password":        password,
		"first_name":      "Yasmine",
		"last_name":       "Alaoui",
		"email":           randompkg.Email(),
		"identity_number": randompkg.IdentityNumber(),
		"birth_date":      "1991-07-23",
		"postal_address":  "12 rue des Orangers, Casablanca",
	}

	createdUser := domain.UserWithoutPassword{
		Username:  username,
		FirstName: "Yasmine",
		LastName:  "Alaoui",
		Email:     validBody["email"].(string),
		Role:      domain.RoleCustomer,
	}

	testCases := []struct {
		name          string
		requestBody   func() gin.H
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name: "ShortPassword",
			requestBody: func() gin.H {
				body := gin.H{}
				for k, v := range validBody {
					body[k] = v
				}
				body["password"] = "123"

				return body
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "BadEmail",
			requestBody: func() gin.H {
				body := gin.H{}
				for k, v := range validBody {
					body[k] = v
				}
				body["email"] = "not-an-email"

				return body
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name: "BadBirthDate",
			requestBody: func() gin.H {
				body := gin.H{}
				for k, v := range validBody {
					body[k] = v
				}
				body["birth_date"] = "23/07/1991"

				return body
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
				require.Contains(t, recorder.Body.String(), "BirthDate")
			},
		},
		{
			name:        "UsernameTaken",
			requestBody: func() gin.H { return validBody },
			buildStubs: func(service *MockService) {
				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUsernameAlreadyExists)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name:        "IdentityNumberTaken",
			requestBody: func() gin.H { return validBody },
			buildStubs: func(service *MockService) {
				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrIdentityNumberAlreadyExists)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusConflict, recorder.Code)
			},
		},
		{
			name:        "InternalError",
			requestBody: func() gin.H { return validBody },
			buildStubs: func(service *MockService) {
				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Any(), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, errorspkg.ErrInternal)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusInternalServerError, recorder.Code)
			},
		},
		{
			name:        "OK",
			requestBody: func() gin.H { return validBody },
			buildStubs: func(service *MockService) {
				wantArg := domain.CreateCustomerParams{
					Username:       username,
					FirstName:      "Yasmine",
					LastName:       "Alaoui",
					Email:          createdUser.Email,
					IdentityNumber: validBody["identity_number"].(string),
					BirthDate:      time.Date(1991, 7, 23, 0, 0, 0, 0, time.UTC),
					PostalAddress:  "12 rue des Orangers, Casablanca",
				}

				service.EXPECT().CreateCustomer(gomock.Any(), gomock.Eq(wantArg), gomock.Eq(password)).
					Times(1).Return(createdUser, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var res struct {
					AccessToken string `json:"access_token"`
					Data        struct {
						User domain.UserWithoutPassword `json:"user"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.NotEmpty(t, res.AccessToken)
				require.Equal(t, createdUser, res.Data.User)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := setupHandler(t, service)

			body, err := json.Marshal(tc.requestBody())
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}

func TestLoginAPI(t *testing.T) {
	username := randompkg.Owner()
	password := randompkg.String(10)

	user := domain.UserWithoutPassword{
		Username: username,
		Role:     domain.RoleCustomer,
	}

	testCases := []struct {
		name          string
		requestBody   gin.H
		buildStubs    func(service *MockService)
		checkResponse func(recorder *httptest.ResponseRecorder)
	}{
		{
			name:        "MissingPassword",
			requestBody: gin.H{"username": username},
			buildStubs: func(service *MockService) {
				service.EXPECT().CheckPassword(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusBadRequest, recorder.Code)
			},
		},
		{
			name:        "UserNotFound",
			requestBody: gin.H{"username": username, "password": password},
			buildStubs: func(service *MockService) {
				service.EXPECT().CheckPassword(gomock.Any(), gomock.Eq(username), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrUserNotFound)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusNotFound, recorder.Code)
			},
		},
		{
			name:        "WrongPassword",
			requestBody: gin.H{"username": username, "password": password},
			buildStubs: func(service *MockService) {
				service.EXPECT().CheckPassword(gomock.Any(), gomock.Eq(username), gomock.Eq(password)).
					Times(1).
					Return(domain.UserWithoutPassword{}, domain.ErrWrongPassword)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusUnauthorized, recorder.Code)
			},
		},
		{
			name:        "OK",
			requestBody: gin.H{"username": username, "password": password},
			buildStubs: func(service *MockService) {
				service.EXPECT().CheckPassword(gomock.Any(), gomock.Eq(username), gomock.Eq(password)).
					Times(1).Return(user, nil)
			},
			checkResponse: func(recorder *httptest.ResponseRecorder) {
				require.Equal(t, http.StatusOK, recorder.Code)

				var res struct {
					AccessToken string `json:"access_token"`
					Data        struct {
						User domain.UserWithoutPassword `json:"user"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.NotEmpty(t, res.AccessToken)
				require.Equal(t, user, res.Data.User)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := setupHandler(t, service)

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(body))
			require.NoError(t, err)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)
			tc.checkResponse(recorder)
		})
	}
}
