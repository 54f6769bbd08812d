package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/pet-wallet/pkg/randompkg"
	"github.com/go-petr/pet-wallet/pkg/tokenpkg"
	"github.com/go-petr/pet-wallet/pkg/web"
)

func TestAuthMiddleware(t *testing.T) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker returned error: %v", err)
	}

	otherMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker returned error: %v", err)
	}

	msisdn := randompkg.MSISDN()

	testCases := []struct {
		name           string
		setupAuth      func(r *http.Request) error
		wantStatusCode int
		wantError      string
		wantUserID     string
	}{
		{
			name:           "NoAuthorization",
			setupAuth:      func(r *http.Request) error { return nil },
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrAuthHeaderNotFound.Error(),
		},
		{
			name: "TokenWithoutType",
			setupAuth: func(r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "", msisdn, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrBadAuthHeaderFormat.Error(),
		},
		{
			name: "BasicAuth",
			setupAuth: func(r *http.Request) error {
				return AddAuthorization(r, tokenMaker, "basic", msisdn, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      ErrUnsupportedAuthType.Error(),
		},
		{
			name: "ExpiredToken",
			setupAuth: func(r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, msisdn, -time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "TokenFromAnotherKey",
			setupAuth: func(r *http.Request) error {
				return AddAuthorization(r, otherMaker, AuthTypeBearer, msisdn, time.Minute)
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrInvalidToken.Error(),
		},
		{
			name: "OK",
			setupAuth: func(r *http.Request) error {
				return AddAuthorization(r, tokenMaker, AuthTypeBearer, msisdn, time.Minute)
			},
			wantStatusCode: http.StatusOK,
			wantUserID:     msisdn,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gin.SetMode(gin.ReleaseMode)
			server := gin.New()

			server.GET("/accounts", AuthMiddleware(tokenMaker), func(ctx *gin.Context) {
				ctx.JSON(http.StatusOK, web.Response{Data: UserID(ctx)})
			})

			request, err := http.NewRequest(http.MethodGet, "/accounts", nil)
			if err != nil {
				t.Fatalf("http.NewRequest returned error: %v", err)
			}

			if err = tc.setupAuth(request); err != nil {
				t.Fatalf("tc.setupAuth(%v) returned error: %v", request, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, want %v", recorder.Code, tc.wantStatusCode)
			}

			got := web.Response{}
			if err := json.NewDecoder(recorder.Body).Decode(&got); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if got.Error != tc.wantError {
				t.Errorf("got.Error = %q, want %q", got.Error, tc.wantError)
			}

			if tc.wantUserID != "" && got.Data != tc.wantUserID {
				t.Errorf("got.Data = %v, want user %q", got.Data, tc.wantUserID)
			}
		})
	}
}
