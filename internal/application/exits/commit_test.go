package exits_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/exits"
	"github.com/jhoicas/almacen-pro/internal/domain"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

// ── Fakes en memoria ─────────────────────────────────────────────────────────

type fakeExitRepo struct {
	headers map[string]*entity.Exit
	lines   []entity.ExitLine

	failInsertHeader    error
	failInsertLines     error
	failUpdateFinalized error
}

func newFakeExitRepo() *fakeExitRepo {
	return &fakeExitRepo{headers: make(map[string]*entity.Exit)}
}

func (r *fakeExitRepo) InsertHeader(_ context.Context, x *entity.Exit) error {
	if r.failInsertHeader != nil {
		return r.failInsertHeader
	}
	cp := *x
	r.headers[x.ID] = &cp
	return nil
}

func (r *fakeExitRepo) InsertLines(_ context.Context, lines []entity.ExitLine) error {
	if r.failInsertLines != nil {
		return r.failInsertLines
	}
	r.lines = append(r.lines, lines...)
	return nil
}

func (r *fakeExitRepo) UpdateFinalized(_ context.Context, id string) error {
	if r.failUpdateFinalized != nil {
		return r.failUpdateFinalized
	}
	x, ok := r.headers[id]
	if !ok {
		return domain.ErrNotFound
	}
	if x.Finalized {
		return domain.ErrAlreadyFinalized
	}
	x.Finalized = true
	return nil
}

func (r *fakeExitRepo) GetByID(_ context.Context, id string) (*entity.Exit, error) {
	return r.headers[id], nil
}

func (r *fakeExitRepo) FindLinesBefore(context.Context, string, time.Time, int, int) ([]entity.MovementLine, error) {
	return nil, nil
}

func (r *fakeExitRepo) FindLinesInRange(context.Context, string, time.Time, time.Time, int, int) ([]entity.MovementLine, error) {
	return nil, nil
}

type fakeRequestRepo struct {
	types    []entity.RequestType
	inserted []*entity.Request

	failInsert error
	failList   error
}

func (r *fakeRequestRepo) Insert(_ context.Context, req *entity.Request) error {
	if r.failInsert != nil {
		return r.failInsert
	}
	cp := *req
	r.inserted = append(r.inserted, &cp)
	return nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (*entity.Request, error) {
	for _, req := range r.inserted {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, nil
}

func (r *fakeRequestRepo) ListTypes(context.Context) ([]entity.RequestType, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	return r.types, nil
}

type fakeItemRepo struct {
	available map[string]decimal.Decimal
	failAvail error
}

func (r *fakeItemRepo) GetByCode(_ context.Context, code string) (*entity.Item, error) {
	if _, ok := r.available[code]; ok {
		return &entity.Item{Code: code}, nil
	}
	return nil, nil
}

func (r *fakeItemRepo) Search(context.Context, string, int, int) ([]entity.Item, error) {
	return nil, nil
}

func (r *fakeItemRepo) Available(_ context.Context, code string) (decimal.Decimal, error) {
	if r.failAvail != nil {
		return decimal.Zero, r.failAvail
	}
	return r.available[code], nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type commitFixture struct {
	exitRepo    *fakeExitRepo
	requestRepo *fakeRequestRepo
	itemRepo    *fakeItemRepo
	uc          *exits.CommitUseCase
}

func newCommitFixture(effects ...exits.SideEffect) *commitFixture {
	f := &commitFixture{
		exitRepo: newFakeExitRepo(),
		requestRepo: &fakeRequestRepo{types: []entity.RequestType{
			{Code: "MANT", Description: "Mantenimiento correctivo"},
			{Code: "LIMP", Description: "Aseo y limpieza"},
		}},
		itemRepo: &fakeItemRepo{available: map[string]decimal.Decimal{
			"A-01": decimal.NewFromInt(10),
			"B-02": decimal.NewFromInt(3),
		}},
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f.uc = exits.NewCommitUseCase(f.exitRepo, f.requestRepo, f.itemRepo, effects, log, nil)
	return f
}

func commitInput(lines ...exits.DraftLine) exits.CommitInput {
	return exits.CommitInput{
		AuthorizedBy: "Carlos",
		RetrievedBy:  "Marta",
		Lines:        lines,
	}
}

func line(code string, qty, available int64) exits.DraftLine {
	return exits.DraftLine{
		ItemCode:  code,
		Quantity:  decimal.NewFromInt(qty),
		UnitPrice: decimal.RequireFromString("1.25"),
		Available: decimal.NewFromInt(available),
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCommit_UnaCabeceraFinalizadaYSusLineas(t *testing.T) {
	f := newCommitFixture()

	result, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 2, 10)))

	require.NoError(t, err)
	assert.Equal(t, exits.StateFinalized, result.State)
	assert.Empty(t, result.RequestID, "sin tipo de solicitud no se crea solicitud alguna")

	require.Len(t, f.exitRepo.headers, 1)
	header := f.exitRepo.headers[result.ExitID]
	require.NotNil(t, header)
	assert.True(t, header.Finalized, "la señal autoritativa de commit es finalized=true")

	require.Len(t, f.exitRepo.lines, 1)
	assert.Equal(t, "A-01", f.exitRepo.lines[0].ItemCode)
	assert.True(t, f.exitRepo.lines[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, f.exitRepo.lines[0].UnitPrice.Equal(decimal.RequireFromString("1.25")),
		"la línea lleva la foto del precio, no una relectura del maestro")
}

func TestCommit_ConSolicitudVinculadaPorCodigoExacto(t *testing.T) {
	f := newCommitFixture()
	in := commitInput(line("A-01", 1, 10))
	in.RequestType = "MANT"
	in.Requester = "Pedro"
	in.Location = "Bodega 2"

	result, err := f.uc.Commit(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, f.requestRepo.inserted, 1)
	req := f.requestRepo.inserted[0]
	assert.Equal(t, result.RequestID, req.ID)
	assert.Equal(t, "MANT", req.TypeCode)
	assert.Equal(t, "Pedro", req.Requester)
	assert.Equal(t, req.ID, f.exitRepo.headers[result.ExitID].RequestID,
		"la cabecera referencia la solicitud creada")
}

func TestCommit_TipoResueltoPorSubcadenaEnDescripcion(t *testing.T) {
	f := newCommitFixture()
	in := commitInput(line("A-01", 1, 10))
	in.RequestType = "limpieza"

	result, err := f.uc.Commit(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, f.requestRepo.inserted, 1)
	assert.Equal(t, "LIMP", f.requestRepo.inserted[0].TypeCode)
	assert.Equal(t, exits.StateFinalized, result.State)
}

func TestCommit_TipoSinCoincidenciaResolutionError(t *testing.T) {
	f := newCommitFixture()
	in := commitInput(line("A-01", 1, 10))
	in.RequestType = "inexistente"

	_, err := f.uc.Commit(context.Background(), in)

	var rerr *domain.ResolutionError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "inexistente", rerr.Code)
	assert.Empty(t, f.exitRepo.headers, "la resolución fallida aborta antes de cualquier escritura")
	assert.Empty(t, f.requestRepo.inserted)
}

func TestCommit_CatalogoInaccesibleEsPersistencia(t *testing.T) {
	f := newCommitFixture()
	f.requestRepo.failList = errors.New("timeout")
	in := commitInput(line("A-01", 1, 10))
	in.RequestType = "MANT"

	_, err := f.uc.Commit(context.Background(), in)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, exits.StepResolveType, perr.Step)
}

func TestCommit_SinLineasValidasRechazado(t *testing.T) {
	f := newCommitFixture()

	_, err := f.uc.Commit(context.Background(), commitInput(
		line("", 5, 10),
		line("A-01", 0, 10),
	))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr, "líneas sin código o sin cantidad positiva se filtran; sin restantes no hay commit")
	assert.Empty(t, f.exitRepo.headers, "la validación local no escribe nada")
}

func TestCommit_CodigoRepetidoRechazado(t *testing.T) {
	f := newCommitFixture()

	_, err := f.uc.Commit(context.Background(), commitInput(
		line("A-01", 1, 10),
		line("A-01", 2, 10),
	))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.exitRepo.headers)
}

func TestCommit_ExcedeDisponibleCacheadoRechazadoSinEscrituras(t *testing.T) {
	f := newCommitFixture()

	_, err := f.uc.Commit(context.Background(), commitInput(line("B-02", 5, 3)))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.exitRepo.headers)
	assert.Empty(t, f.exitRepo.lines)
}

func TestCommit_CabeceraIncompletaRechazada(t *testing.T) {
	f := newCommitFixture()
	in := commitInput(line("A-01", 1, 10))
	in.RetrievedBy = ""

	_, err := f.uc.Commit(context.Background(), in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCommit_ConflictoDeStockDejaCabeceraHuerfana(t *testing.T) {
	f := newCommitFixture()
	// El disponible cacheado prometía 8, pero el almacén solo tiene 1.
	f.itemRepo.available["A-01"] = decimal.NewFromInt(1)

	_, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 2, 8)))

	var serr *domain.StockConflictError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "A-01", serr.ItemCode)
	assert.True(t, serr.Requested.Equal(decimal.NewFromInt(2)))
	assert.True(t, serr.Available.Equal(decimal.NewFromInt(1)))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	require.Len(t, f.exitRepo.headers, 1, "la cabecera ya escrita no se revierte")
	for _, h := range f.exitRepo.headers {
		assert.False(t, h.Finalized, "la huérfana queda en finalized=false")
	}
	assert.Empty(t, f.exitRepo.lines, "el conflicto aborta antes de escribir líneas")
}

func TestCommit_FallaDeCabeceraConPaso(t *testing.T) {
	f := newCommitFixture()
	f.exitRepo.failInsertHeader = errors.New("disco lleno")

	_, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 1, 10)))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, exits.StepCreateHeader, perr.Step)
	assert.ErrorContains(t, err, "disco lleno", "el error del almacén viaja envuelto")
}

func TestCommit_FallaDeLineasConPasoYHuerfana(t *testing.T) {
	f := newCommitFixture()
	f.exitRepo.failInsertLines = errors.New("violación de constraint")

	_, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 1, 10)))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, exits.StepInsertLines, perr.Step)
	require.Len(t, f.exitRepo.headers, 1, "cabecera huérfana: el llamador debe reenviar la operación completa")
}

func TestCommit_FallaAlFinalizarConPaso(t *testing.T) {
	f := newCommitFixture()
	f.exitRepo.failUpdateFinalized = errors.New("timeout")

	_, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 1, 10)))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, exits.StepFinalize, perr.Step)
	require.Len(t, f.exitRepo.lines, 1, "las líneas ya escritas permanecen; solo falta la señal de commit")
}

func TestCommit_EfectoColateralFallidoNoAborta(t *testing.T) {
	effectErr := errors.New("registro auxiliar caído")
	called := false
	f := newCommitFixture(func(ctx context.Context, x *entity.Exit) error {
		called = true
		return effectErr
	})

	result, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 1, 10)))

	require.NoError(t, err, "los efectos colaterales son best-effort, no abortan el commit")
	assert.True(t, called)
	assert.Equal(t, exits.StateFinalized, result.State)
}

func TestCommit_EfectoColateralRecibeLaCabecera(t *testing.T) {
	var seen string
	f := newCommitFixture(func(ctx context.Context, x *entity.Exit) error {
		seen = x.ID
		return nil
	})

	result, err := f.uc.Commit(context.Background(), commitInput(line("A-01", 1, 10)))

	require.NoError(t, err)
	assert.Equal(t, result.ExitID, seen, "el efecto corre después de existir la cabecera")
}
