package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/negocify-api/internal/application/auth"
	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/sales"
	"github.com/jhoicas/negocify-api/internal/application/usecase"
	"github.com/jhoicas/negocify-api/internal/domain/entity"
	apphttp "github.com/jhoicas/negocify-api/internal/interfaces/http"
	"github.com/jhoicas/negocify-api/internal/testutil/memstore"
	"github.com/jhoicas/negocify-api/pkg/jwt"
	"github.com/jhoicas/negocify-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "negocify-test"
	testExpMin    = 60
	testPassword  = "secreto1"
)

// testEnv aplicación Fiber completa sobre el store en memoria.
type testEnv struct {
	app     *fiber.App
	store   *memstore.Store
	signer  *jwt.Signer
	metrics *metrics.Metrics

	adminRole entity.ID
	empRole   entity.ID
	centro    entity.ID
	norte     entity.ID
}

// buildTestApp construye la app con todas las rutas, dos almacenes y los roles de referencia.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	return buildTestAppWithLog(t, zerolog.Nop())
}

// buildTestAppWithLog como buildTestApp, con el logger que recibe el router.
func buildTestAppWithLog(t *testing.T, log zerolog.Logger) *testEnv {
	t.Helper()
	s := memstore.New()
	signer, err := jwt.NewSigner(testJWTSecret, "HS256", testIssuer, testExpMin)
	require.NoError(t, err)

	env := &testEnv{
		store:     s,
		signer:    signer,
		metrics:   metrics.New(prometheus.NewRegistry()),
		adminRole: s.AddRole(entity.RoleAdministrador),
		empRole:   s.AddRole(entity.RoleEmpleado),
		centro:    s.AddWarehouse("Centro"),
		norte:     s.AddWarehouse("Norte"),
	}

	resolver := authz.NewResolver(s.Access(), s.Warehouses(), log)
	guard := authz.NewAdminGuard(s.Access(), s.Roles(), log)

	env.app = fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(env.app, apphttp.RouterDeps{
		Gate:        auth.NewAuthenticator(signer, s.Users(), resolver, log),
		AuthUC:      auth.NewAuthUseCase(s.Users(), signer).WithBcryptCost(bcrypt.MinCost),
		UserUC:      usecase.NewUserUseCase(s, s.Users(), s.Roles(), s.Warehouses(), s.Access(), guard).WithBcryptCost(bcrypt.MinCost),
		WarehouseUC: usecase.NewWarehouseUseCase(s.Warehouses()),
		ProductUC:   usecase.NewProductUseCase(s.Products(), s.ProductTypes(), s.Warehouses()),
		SaleTypeUC:  usecase.NewSaleTypeUseCase(s.SaleTypes(), guard),
		SaleUC:      sales.NewUseCase(s, s.Sales(), s.SaleTypes(), 0.19, log),
		Metrics:     env.metrics,
		Log:         log,
		ServiceName: "negocify-test",
	})
	return env
}

// user crea un usuario con password conocido y, si roleID > 0, un rol en el almacén.
func (e *testEnv) user(t *testing.T, name string, warehouseID, roleID entity.ID) entity.ID {
	t.Helper()
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	id := e.store.AddUser(name, name+"@negocify.co", hash)
	if roleID > 0 {
		e.store.Assign(id, warehouseID, roleID)
	}
	return id
}

// bearer genera la cabecera Authorization para el usuario.
func (e *testEnv) bearer(t *testing.T, userID entity.ID) string {
	t.Helper()
	tok, err := e.signer.Generate(userID, "Test", "test@negocify.co")
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// do lanza la petición y devuelve la respuesta.
func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el cuerpo JSON en out y cierra la respuesta.
func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// errorCode devuelve el campo code de un dto.ErrorResponse.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]any
	decode(t, resp, &body)
	code, _ := body["code"].(string)
	return code
}

// stubGate authenticator fijo para probar el mapeo de errores del middleware.
type stubGate struct {
	p   *entity.Principal
	err error
}

func (g stubGate) Authenticate(context.Context, string) (*entity.Principal, error) {
	return g.p, g.err
}
