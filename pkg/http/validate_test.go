package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seriesQuery struct {
	Crop string `query:"crop" validate:"required,max=10"`
	Days int    `query:"days" default:"15" validate:"gte=1,lte=365"`
	Unit string `query:"unit" default:"quintal" validate:"oneof=quintal kg"`
}

func bindQuery(t *testing.T, target string, req interface{}) interface{} {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
	return ReadAndValidateRequest(c, req)
}

func TestReadAndValidateAppliesDefaults(t *testing.T) {
	req := &seriesQuery{}
	require.Nil(t, bindQuery(t, "/?crop=rice", req))
	assert.Equal(t, "rice", req.Crop)
	assert.Equal(t, 15, req.Days)
	assert.Equal(t, "quintal", req.Unit)
}

func TestReadAndValidateReportsQueryNames(t *testing.T) {
	tests := []struct {
		target  string
		code    string
		field   string
		message string
	}{
		{"/?days=7", "ERR_REQUIRED", "crop", "crop is required"},
		{"/?crop=sugarcane-x", "ERR_MAX", "crop", "crop must be at most 10 characters"},
		{"/?crop=rice&days=400", "ERR_LTE", "days", "days must be 365 or less"},
		{"/?crop=rice&unit=ton", "ERR_ONEOF", "unit", "unit must be one of: quintal, kg"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			verr := bindQuery(t, tt.target, &seriesQuery{})
			errs, ok := verr.([]ValidationError)
			require.True(t, ok)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestReadAndValidateRejectsMalformedParams(t *testing.T) {
	errs, ok := bindQuery(t, "/?crop=rice&days=abc", &seriesQuery{}).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_BIND", errs[0].Code)
}
