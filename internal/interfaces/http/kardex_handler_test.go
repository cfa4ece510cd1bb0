package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-mvc/internal/application/dto"
	"github.com/jhoicas/Kardex-mvc/internal/application/usecase"
	"github.com/jhoicas/Kardex-mvc/internal/domain"
	"github.com/jhoicas/Kardex-mvc/internal/domain/entity"
	"github.com/jhoicas/Kardex-mvc/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Kardex-mvc/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubReport devuelve un contenido fijo y registra cuántas filas recibió.
type stubReport struct {
	content string
	got     int
	err     error
}

func (s *stubReport) Generate(_ context.Context, _ string, records []*entity.Kardex) ([]byte, error) {
	s.got = len(records)
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.content), nil
}

// brokenService falla todas las operaciones con un error de persistencia.
type brokenService struct{}

func (brokenService) fault(op string) error {
	return domain.NewPersistenceError(op, errors.New("conexión rechazada"))
}
func (b brokenService) List(context.Context) ([]*entity.Kardex, error) { return nil, b.fault("list") }
func (b brokenService) Create(context.Context, *entity.Kardex) error   { return b.fault("create") }
func (b brokenService) Update(context.Context, *entity.Kardex) (int64, error) {
	return 0, b.fault("update")
}
func (b brokenService) Delete(context.Context, int) error { return b.fault("delete") }
func (b brokenService) Import(context.Context, []dto.ImportRow) (*dto.ImportResult, error) {
	return nil, b.fault("import")
}

type testEnv struct {
	app  *fiber.App
	repo *memory.KardexRepo
	pdf  *stubReport
	xlsx *stubReport
}

func newEnv(t *testing.T, secret string) *testEnv {
	t.Helper()
	repo := memory.NewKardexRepository()
	uc := usecase.NewKardexUseCase(repo, repo, nil)
	env := &testEnv{repo: repo, pdf: &stubReport{content: "%PDF-stub"}, xlsx: &stubReport{content: "PK-stub"}}
	env.app = newApp(uc, env.pdf, env.xlsx, secret)
	return env
}

func newApp(svc apphttp.KardexService, pdf, xlsx apphttp.ReportGenerator, secret string) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Kardex:    apphttp.NewKardexHandler(svc, pdf, xlsx, nil),
		JWTSecret: secret,
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body, auth string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		if strings.HasSuffix(path, "/import") {
			req.Header.Set("Content-Type", "text/csv")
		} else {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) seed(t *testing.T, course string, semester int, grade int64) *entity.Kardex {
	t.Helper()
	k := &entity.Kardex{Course: course, Semester: semester, Grade: decimal.NewFromInt(grade)}
	require.NoError(t, e.repo.Create(context.Background(), k))
	return k
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodGet, "/health", "", "")
	body := decode[map[string]string](t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestList_TablaVacia(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodGet, "/api/kardex", "", "")
	body := decode[dto.KardexListResponse](t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, body.Total)
	assert.NotNil(t, body.Items, "una tabla vacía se serializa como [] y no como null")
}

func TestCreate_AsignaIDYListaLoDevuelve(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPost, "/api/kardex", `{"curso":"Math","semestre":1,"nota":90}`, "")
	created := decode[dto.KardexResponse](t, resp)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Math", created.Course)
	assert.Equal(t, "90", created.Grade.String())

	list := decode[dto.KardexListResponse](t, do(t, env.app, http.MethodGet, "/api/kardex", "", ""))
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
	assert.Equal(t, "Math", list.Items[0].Course)
	assert.Equal(t, 1, list.Items[0].Semester)
	assert.True(t, created.Grade.Equal(list.Items[0].Grade))
}

func TestCreate_CuerpoInvalido_Retorna400(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPost, "/api/kardex", `{"curso":"Math","semestre":"abc","nota":90}`, "")
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestCreate_Validacion_Retorna400(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPost, "/api/kardex", `{"curso":"  ","semestre":1,"nota":90}`, "")
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, usecase.FieldCourse)

	list, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdate_ModificaSoloElID(t *testing.T) {
	env := newEnv(t, "")
	a := env.seed(t, "Math", 1, 90)
	b := env.seed(t, "Bio", 2, 80)

	resp := do(t, env.app, http.MethodPut, "/api/kardex/2", `{"curso":"Chem","semestre":3,"nota":75}`, "")
	body := decode[dto.UpdateResponse](t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), body.Affected)

	list, err := env.repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, "Math", list[0].Course)
	assert.Equal(t, b.ID, list[1].ID)
	assert.Equal(t, "Chem", list[1].Course)
	assert.Equal(t, 3, list[1].Semester)
}

func TestUpdate_IDInexistente_Retorna404(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPut, "/api/kardex/9999", `{"curso":"Chem","semestre":3,"nota":75}`, "")
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestUpdate_IDNoNumerico_Retorna400(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPut, "/api/kardex/abc", `{"curso":"Chem","semestre":3,"nota":75}`, "")
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", body.Code)
}

func TestUpdate_IDFueraDeINT4_Retorna404(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPut, "/api/kardex/3000000000", `{"curso":"Chem","semestre":3,"nota":75}`, "")
	body := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestDelete_IDFueraDeINT4_Retorna204(t *testing.T) {
	env := newEnv(t, "")
	env.seed(t, "Math", 1, 90)

	resp := do(t, env.app, http.MethodDelete, "/api/kardex/3000000000", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	list, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreate_NotaConExponenteEnorme_Retorna400(t *testing.T) {
	env := newEnv(t, "")
	resp := do(t, env.app, http.MethodPost, "/api/kardex", `{"curso":"Math","semestre":1,"nota":"1e10000000"}`, "")
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "VALIDATION")
	assert.Less(t, len(raw), 200, "el mensaje de error no expande la nota")
}

func TestDelete_QuitaElRegistroYToleraInexistente(t *testing.T) {
	env := newEnv(t, "")
	env.seed(t, "Math", 1, 90)

	resp := do(t, env.app, http.MethodDelete, "/api/kardex/1", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, env.app, http.MethodDelete, "/api/kardex/1", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	list, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestExport_PDFyXLSX(t *testing.T) {
	env := newEnv(t, "")
	env.seed(t, "Math", 1, 90)
	env.seed(t, "Bio", 2, 80)

	resp := do(t, env.app, http.MethodGet, "/api/kardex/export/pdf", "", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "kardex.pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-stub", string(raw))
	assert.Equal(t, 2, env.pdf.got)

	resp2 := do(t, env.app, http.MethodGet, "/api/kardex/export/xlsx", "", "")
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.Contains(t, resp2.Header.Get("Content-Disposition"), "kardex.xlsx")
	assert.Equal(t, 2, env.xlsx.got)
}

func TestExport_FallaDelGenerador_Retorna500(t *testing.T) {
	env := newEnv(t, "")
	env.pdf.err = errors.New("fuente no disponible")

	resp := do(t, env.app, http.MethodGet, "/api/kardex/export/pdf", "", "")
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
}

func TestImport_CSVConFilaRechazada(t *testing.T) {
	env := newEnv(t, "")
	csv := "curso;semestre;nota\nMath;1;90\nBio;x;80\nChem;2;70\n"

	resp := do(t, env.app, http.MethodPost, "/api/kardex/import", csv, "")
	body := decode[dto.ImportResult](t, resp)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, body.Created)
	require.Len(t, body.Rejected, 1)
	assert.Equal(t, 3, body.Rejected[0].Line)

	list, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestPersistencia_Retorna500(t *testing.T) {
	app := newApp(brokenService{}, &stubReport{}, &stubReport{}, "")

	cases := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/kardex", ""},
		{http.MethodPost, "/api/kardex", `{"curso":"Math","semestre":1,"nota":90}`},
		{http.MethodPut, "/api/kardex/1", `{"curso":"Math","semestre":1,"nota":90}`},
		{http.MethodDelete, "/api/kardex/1", ""},
		{http.MethodGet, "/api/kardex/export/pdf", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := do(t, app, tc.method, tc.path, tc.body, "")
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			assert.Equal(t, "PERSISTENCE", body.Code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autenticación en rutas de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestEscrituraRequiereTokenConSecret(t *testing.T) {
	env := newEnv(t, testJWTSecret)

	resp := do(t, env.app, http.MethodPost, "/api/kardex", `{"curso":"Math","semestre":1,"nota":90}`, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, env.app, http.MethodPost, "/api/kardex", `{"curso":"Math","semestre":1,"nota":90}`, bearer(t, testSubject))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, env.app, http.MethodDelete, "/api/kardex/1", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLecturaNoRequiereToken(t *testing.T) {
	env := newEnv(t, testJWTSecret)
	resp := do(t, env.app, http.MethodGet, "/api/kardex", "", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
