package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/domain"
)

// buildErrorApp monta una ruta que responde el error dado vía respondError.
func buildErrorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func doFail(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := buildErrorApp(err)
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestRespondError_Validacion400(t *testing.T) {
	status, out := doFail(t, &domain.ValidationError{Reason: "faltan campos"})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "faltan campos", out.Message)
}

func TestRespondError_Resolucion422(t *testing.T) {
	status, out := doFail(t, &domain.ResolutionError{Code: "XYZ"})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "RESOLUTION", out.Code)
}

func TestRespondError_ConflictoDeStock409(t *testing.T) {
	status, out := doFail(t, &domain.StockConflictError{
		ItemCode:  "A-01",
		Requested: decimal.NewFromInt(5),
		Available: decimal.NewFromInt(2),
	})

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "STOCK_CONFLICT", out.Code)
	assert.Contains(t, out.Message, "A-01")
}

func TestRespondError_PersistenciaConPaso502(t *testing.T) {
	status, out := doFail(t, &domain.PersistenceError{Step: "finalize", Err: errors.New("timeout")})

	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "PERSISTENCE_finalize", out.Code, "el paso fallido viaja en el código de error")
}

func TestRespondError_Sentinelas(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"ya finalizada", domain.ErrAlreadyFinalized, fiber.StatusConflict, "CONFLICT"},
		{"duplicado", domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{"desconocido", errors.New("sorpresa"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := doFail(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, out.Code)
		})
	}
}
