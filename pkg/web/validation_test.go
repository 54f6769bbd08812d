package web

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestBindErrorMsg(t *testing.T) {
	type request struct {
		Currency string `validate:"required"`
		PageSize int32  `validate:"min=1,max=100"`
	}

	v := validator.New()

	testCases := []struct {
		name string
		req  request
		want string
	}{
		{
			name: "Required",
			req:  request{PageSize: 1},
			want: "Currency is required",
		},
		{
			name: "Max",
			req:  request{Currency: "USD", PageSize: 101},
			want: "PageSize must be at most 100",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := BindErrorMsg(v.Struct(tc.req)); got != tc.want {
				t.Errorf("BindErrorMsg() = %q, want %q", got, tc.want)
			}
		})
	}

	if got := BindErrorMsg(errors.New("EOF")); got != "invalid request" {
		t.Errorf("BindErrorMsg(EOF) = %q, want %q", got, "invalid request")
	}
}
